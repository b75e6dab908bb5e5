package browse

//go:generate mockgen -source=deps.go -destination=mocks/deps.go -package=mocks

import (
	"context"
	"time"

	"github.com/educa-portal/acervo/internal/cache"
	"github.com/educa-portal/acervo/internal/catalog"
	"github.com/educa-portal/acervo/internal/portal"
)

// Portal is the subset of the portal API the service needs.
type Portal interface {
	// UserID returns the account id carried by the session token.
	UserID() (string, error)
	CurrentUser(ctx context.Context) (*portal.User, error)
	Content(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error)
	Delete(ctx context.Context, kind catalog.Kind, id string) error
	LikeVideo(ctx context.Context, id string) (*catalog.Item, error)
}

// SnapshotStore persists the last good portal responses.
type SnapshotStore interface {
	Get(ctx context.Context, key string) (cache.Entry, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
