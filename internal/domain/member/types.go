package member

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role gates the administrative operations. Members book; managers approve,
// cancel, complete, delete and read stats.
type Role string

const (
	RoleMember  Role = "member"
	RoleManager Role = "manager"
)

func NewRole(s string) (Role, error) {
	switch Role(s) {
	case RoleMember, RoleManager:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}
