package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"paper-checkin/internal/config"
	"paper-checkin/internal/model"
)

// AuthService checks credentials against the members table, or against the
// configured admin account when the server runs without a database.
type AuthService struct {
	db    *gorm.DB // may be nil
	admin config.AdminConfig
}

func NewAuthService(db *gorm.DB, admin config.AdminConfig) *AuthService {
	return &AuthService{db: db, admin: admin}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Member, error) {
	if s.db != nil {
		var m model.Member
		if err := s.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		if bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(password)) != nil {
			return nil, fmt.Errorf("wrong password")
		}
		return &m, nil
	}

	if s.admin.Username == "" {
		return nil, fmt.Errorf("login disabled: no database and no admin account configured")
	}
	if username != s.admin.Username ||
		subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) != 1 {
		return nil, fmt.Errorf("wrong password")
	}
	return &model.Member{ID: 1, Username: username, Name: username, Role: "admin"}, nil
}
