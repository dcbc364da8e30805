//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"facility-booking/internal/domain/member"
	"facility-booking/internal/handler/middleware"
	"facility-booking/internal/pkg/cookie"
	"facility-booking/internal/pkg/jwt"
	"facility-booking/internal/usecase"
	"facility-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router     *gin.Engine
	jwtService *jwt.Service
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.jwtService = jwt.NewService("test-secret", time.Hour)

	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(s.jwtService))

	whoami := func(c *gin.Context) {
		email, _ := middleware.GetUserEmail(c)
		c.JSON(http.StatusOK, gin.H{"email": email, "groups": middleware.GetUserGroups(c)})
	}

	s.router.GET("/private", auth.RequireAuth(), whoami)
	s.router.GET("/optional", auth.OptionalAuth(), whoami)
	s.router.GET("/managed", auth.RequireAuth(), auth.RequireRoleAtLeast(member.RoleManager), whoami)
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) token(email string, role member.Role, groups []string) string {
	token, err := s.jwtService.GenerateToken(uuid.New(), email, role, groups)
	s.Require().NoError(err)
	return token
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("success: bearer token in the Authorization header", func() {
		token := s.token("booker@example.com", member.RoleMember, []string{"LifeMembers"})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/private", nil, token)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("booker@example.com", body["email"])
	})

	s.Run("success: token carried by the gateway cookie", func() {
		token := s.token("booker@example.com", member.RoleMember, nil)
		cookies := []*http.Cookie{{Name: cookie.AccessTokenCookieName, Value: token}}

		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodGet, "/private", nil, cookies, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 401 without any token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/private", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Access token required")
	})

	s.Run("error: 401 for an expired token", func() {
		expired := jwt.NewService("test-secret", -time.Minute)
		token, err := expired.GenerateToken(uuid.New(), "booker@example.com", member.RoleMember, nil)
		s.Require().NoError(err)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/private", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("error: 401 for a token signed with another secret", func() {
		other := jwt.NewService("other-secret", time.Hour)
		token, err := other.GenerateToken(uuid.New(), "booker@example.com", member.RoleMember, nil)
		s.Require().NoError(err)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/private", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

func (s *AuthMiddlewareTestSuite) TestOptionalAuth() {
	s.Run("success: anonymous request passes with no identity", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/optional", nil, "")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("", body["email"])
	})

	s.Run("success: valid token attaches groups", func() {
		token := s.token("booker@example.com", member.RoleMember, []string{"AnmcLifeMembers"})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/optional", nil, token)

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal([]any{"AnmcLifeMembers"}, body["groups"])
	})

	s.Run("success: garbage token is ignored rather than rejected", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/optional", nil, "not-a-jwt")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRoleAtLeast() {
	s.Run("success: manager reaches a managed route", func() {
		token := s.token("manager@example.com", member.RoleManager, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/managed", nil, token)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 403 for a plain member", func() {
		token := s.token("booker@example.com", member.RoleMember, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/managed", nil, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}
