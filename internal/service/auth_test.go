package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paper-checkin/internal/config"
)

func TestAdminFallbackLogin(t *testing.T) {
	s := NewAuthService(nil, config.AdminConfig{Username: "admin", Password: "s3cret"})

	m, err := s.Login(context.Background(), "admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin", m.Username)
	assert.Equal(t, "admin", m.Role)

	_, err = s.Login(context.Background(), "admin", "wrong")
	assert.Error(t, err)
	_, err = s.Login(context.Background(), "other", "s3cret")
	assert.Error(t, err)
}

func TestLoginDisabledWithoutDBAndAdmin(t *testing.T) {
	s := NewAuthService(nil, config.AdminConfig{})
	_, err := s.Login(context.Background(), "anyone", "x")
	assert.ErrorContains(t, err, "login disabled")
}
