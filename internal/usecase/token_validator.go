package usecase

import (
	"facility-booking/internal/domain/member"
	"facility-booking/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Identity is what the middleware extracts from a validated token. Groups
// are carried through to pricing, which resolves life membership from them.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   member.Role
	Groups []string
}

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Identity{}, err
	}

	role, err := member.NewRole(claims.Role)
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   role,
		Groups: claims.Groups,
	}, nil
}
