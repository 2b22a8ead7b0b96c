package model

import "time"

type Member struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex" json:"username"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
	Role     string `json:"role"`
}

// CheckinRecord is the archived form of a verdict record, one row per
// evaluated check-in entry.
type CheckinRecord struct {
	ID              int       `gorm:"primaryKey" json:"id"`
	Owner           string    `gorm:"index" json:"owner"` // session owner who uploaded the batch
	Nickname        string    `json:"nickname"`
	PunchDate       string    `json:"punch_date"`
	Excerpt         string    `json:"excerpt"`
	Similarity      float64   `json:"similarity"`
	DateValid       bool      `json:"date_valid"`
	SimilarityValid bool      `json:"similarity_valid"`
	NicknameValid   bool      `json:"nickname_valid"`
	Passed          bool      `json:"passed"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Member) TableName() string        { return "members" }
func (CheckinRecord) TableName() string { return "checkin_records" }
