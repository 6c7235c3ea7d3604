package session

import (
	"context"

	"github.com/google/uuid"
)

// Session is the server-held state tied to an authenticated request. It is
// passed explicitly to operations that need it; there is no process-wide
// current-user value.
type Session struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Store keeps sessions keyed by an opaque token. Get returns (nil, nil) for
// unknown or expired tokens; Delete on an unknown token is a no-op.
type Store interface {
	Create(ctx context.Context, s *Session) (token string, err error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// newToken returns an opaque session token.
func newToken() string {
	return uuid.NewString()
}
