package store

import (
	"context"
	"time"

	"github.com/finpay/gateway/models"
)

// UserRepository is the data-access boundary for user accounts. The gateway
// only reads and creates users; all other user mutations belong to the user
// backend service.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// RefreshTokenRepository persists refresh tokens: the sole server-side
// revocation mechanism for issued credentials.
//
// Delete returns the number of rows removed. Rotation relies on this to
// detect the delete-then-insert race: when two callers rotate the same token
// concurrently, only one Delete observes an affected row, and the loser must
// fail instead of issuing a second valid pair.
type RefreshTokenRepository interface {
	Create(ctx context.Context, token models.RefreshToken) error
	Find(ctx context.Context, token string) (models.RefreshToken, error)
	Delete(ctx context.Context, token string) (int64, error)
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
