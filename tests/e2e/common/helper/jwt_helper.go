//go:build e2e

package helper

import (
	"testing"
	"time"

	"facility-booking/internal/domain/member"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTTestHelper struct {
	cfg config.JWTConfig
}

func NewJWTTestHelper(cfg config.JWTConfig) *JWTTestHelper {
	return &JWTTestHelper{cfg: cfg}
}

// GenerateToken mints a valid access token directly; there is no login
// endpoint to exercise, identity comes from the upstream gateway in
// production.
func (h *JWTTestHelper) GenerateToken(t *testing.T, email string, role member.Role, groups []string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Duration)
	token, err := service.GenerateToken(uuid.New(), email, role, groups)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken mints a token that is already past its expiry.
func (h *JWTTestHelper) CreateExpiredToken(t *testing.T, email string, role member.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond)
	token, err := service.GenerateToken(uuid.New(), email, role, nil)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
