package service

import (
	"context"
	"log/slog"

	"paper-checkin/internal/checkin"
)

// Recognizer turns an uploaded screenshot into ordered text lines.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) ([]string, error)
}

// ReferenceSource supplies the day's abstract and the member roster.
type ReferenceSource interface {
	FetchTodayAbstract(ctx context.Context) (string, error)
	FetchMemberNicknames(ctx context.Context) ([]string, error)
}

// Image is one uploaded screenshot.
type Image struct {
	Name string
	Data []byte
}

// ImageResult is the outcome for a single image. Error and Warning carry the
// user-facing message; a recognition failure on one image never affects the
// others in the batch.
type ImageResult struct {
	Name     string           `json:"name"`
	Error    string           `json:"error,omitempty"`
	Warning  string           `json:"warning,omitempty"`
	Entries  []checkin.Entry  `json:"entries,omitempty"`
	Verdicts []checkin.Record `json:"verdicts,omitempty"`
}

// BatchReport summarizes one upload batch.
type BatchReport struct {
	AbstractPreview string        `json:"abstract_preview,omitempty"`
	Warning         string        `json:"warning,omitempty"` // batch-level, e.g. missing abstract
	Images          []ImageResult `json:"images"`
}

// CheckinService runs the recognize → parse → verify → store pipeline over
// an upload batch. The collaborators are injected so the pipeline can run
// against deterministic stand-ins in tests.
type CheckinService struct {
	ocr      Recognizer
	ref      ReferenceSource
	verifier *checkin.Verifier
	archive  *ArchiveService // nil when no database is configured
}

func NewCheckinService(ocr Recognizer, ref ReferenceSource, verifier *checkin.Verifier, archive *ArchiveService) *CheckinService {
	return &CheckinService{ocr: ocr, ref: ref, verifier: verifier, archive: archive}
}

// ProcessBatch verifies every uploaded image against today's reference data
// and appends the verdicts to the caller's session store, images in
// user-supplied order and entries in parser-emission order.
func (s *CheckinService) ProcessBatch(ctx context.Context, owner string, store *checkin.Store, images []Image) BatchReport {
	var report BatchReport

	abstract, err := s.ref.FetchTodayAbstract(ctx)
	if err != nil {
		slog.Warn("fetch abstract failed", "err", err)
		abstract = ""
	}
	if abstract == "" {
		// Warned once per batch; every entry below fails the similarity check.
		report.Warning = "今日论文摘要未录入多维表格，请管理员补录。"
	} else {
		report.AbstractPreview = preview(abstract, 100)
	}

	roster, err := s.ref.FetchMemberNicknames(ctx)
	if err != nil {
		slog.Warn("fetch roster failed, nickname check disabled", "err", err)
		roster = nil
	}

	var batchVerdicts []checkin.Record
	for _, img := range images {
		res := ImageResult{Name: img.Name}
		if len(img.Data) == 0 {
			res.Error = "图片内容为空或读取失败。"
			report.Images = append(report.Images, res)
			continue
		}

		lines, err := s.ocr.Recognize(ctx, img.Data)
		if err != nil {
			slog.Error("recognize failed", "image", img.Name, "err", err)
			res.Error = "识别失败，请检查图片是否清晰。"
			report.Images = append(report.Images, res)
			continue
		}

		entries := checkin.Parse(lines)
		if len(entries) == 0 {
			res.Warning = "未检测到符合格式的打卡信息，请确认截图包含三行规范文本。"
			report.Images = append(report.Images, res)
			continue
		}

		res.Entries = entries
		for _, e := range entries {
			rec := s.verifier.Evaluate(e, abstract, roster)
			store.Append(rec)
			res.Verdicts = append(res.Verdicts, rec)
			batchVerdicts = append(batchVerdicts, rec)
		}
		slog.Info("image verified", "owner", owner, "image", img.Name, "entries", len(entries))
		report.Images = append(report.Images, res)
	}

	if s.archive != nil && len(batchVerdicts) > 0 {
		if err := s.archive.SaveRecords(ctx, owner, batchVerdicts); err != nil {
			slog.Warn("archive failed", "owner", owner, "err", err)
		}
	}
	return report
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
