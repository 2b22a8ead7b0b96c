package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"paper-checkin/internal/checkin"
	"paper-checkin/internal/logger"
	"paper-checkin/internal/service"
)

type CheckinHandler struct {
	svc      *service.CheckinService
	sessions *checkin.Registry
}

func NewCheckinHandler(svc *service.CheckinService, sessions *checkin.Registry) *CheckinHandler {
	return &CheckinHandler{svc: svc, sessions: sessions}
}

// store returns the caller's session store, keyed by the JWT user name.
func (h *CheckinHandler) store(c *gin.Context) *checkin.Store {
	return h.sessions.Get(c.GetString("user_name"))
}

// Upload handles POST /api/checkin/upload — multipart field "files",
// one or more screenshot images, processed in the uploaded order.
func (h *CheckinHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请上传打卡截图"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请上传打卡截图"})
		return
	}

	images := make([]service.Image, 0, len(files))
	for _, fh := range files {
		img := service.Image{Name: fh.Filename}
		if f, err := fh.Open(); err == nil {
			// A read failure leaves Data empty; the pipeline reports it
			// per image instead of failing the batch.
			img.Data, _ = io.ReadAll(f)
			f.Close()
		}
		images = append(images, img)
	}

	owner := c.GetString("user_name")
	logger.Info("checkin.upload", "owner", owner, "images", len(images))
	report := h.svc.ProcessBatch(c.Request.Context(), owner, h.store(c), images)
	c.JSON(http.StatusOK, report)
}

// Records handles GET /api/checkin/records.
func (h *CheckinHandler) Records(c *gin.Context) {
	records := h.store(c).Records()
	c.JSON(http.StatusOK, gin.H{"records": records, "count": len(records)})
}

// Pending handles GET /api/checkin/pending.
func (h *CheckinHandler) Pending(c *gin.Context) {
	pending := h.store(c).Pending()
	c.JSON(http.StatusOK, gin.H{"pending": pending, "count": len(pending)})
}

// ApproveAll handles POST /api/checkin/pending/approve — the bulk override:
// every pending record is forced to pass, with no per-record selection.
func (h *CheckinHandler) ApproveAll(c *gin.Context) {
	n := h.store(c).ApproveAllPending()
	logger.Info("checkin.approve_all", "owner", c.GetString("user_name"), "approved", n)
	c.JSON(http.StatusOK, gin.H{"approved": n, "message": "已强制通过所有待复核条目"})
}

// Clear handles POST /api/checkin/clear.
func (h *CheckinHandler) Clear(c *gin.Context) {
	h.store(c).Clear()
	logger.Info("checkin.clear", "owner", c.GetString("user_name"))
	c.JSON(http.StatusOK, gin.H{"message": "已清空"})
}

// Export handles GET /api/checkin/export — all records as CSV.
func (h *CheckinHandler) Export(c *gin.Context) {
	data := checkin.ExportCSV(h.store(c).Records())
	c.Header("Content-Disposition", `attachment; filename="punch_records.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// Leaderboard handles GET /api/leaderboard.
func (h *CheckinHandler) Leaderboard(c *gin.Context) {
	c.JSON(http.StatusOK, checkin.Aggregate(h.store(c).Records()))
}
