package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"paper-checkin/internal/checkin"
	"paper-checkin/internal/model"
)

// ArchiveService persists verdict records to MySQL so batches survive
// restarts for offline review. The in-memory session store stays the source
// of truth for the live leaderboard.
type ArchiveService struct {
	db *gorm.DB
}

func NewArchiveService(db *gorm.DB) *ArchiveService { return &ArchiveService{db: db} }

func (s *ArchiveService) SaveRecords(ctx context.Context, owner string, recs []checkin.Record) error {
	if len(recs) == 0 {
		return nil
	}
	now := time.Now()
	rows := make([]model.CheckinRecord, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, model.CheckinRecord{
			Owner:           owner,
			Nickname:        r.Nickname,
			PunchDate:       r.PunchDate,
			Excerpt:         r.Excerpt,
			Similarity:      r.Similarity,
			DateValid:       r.DateValid,
			SimilarityValid: r.SimilarityValid,
			NicknameValid:   r.NicknameValid,
			Passed:          r.Passed,
			CreatedAt:       now,
		})
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert records: %w", err)
	}
	return nil
}
