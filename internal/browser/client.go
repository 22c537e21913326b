package browser

import (
	"context"

	"repodeck/internal/model"
)

// Client is the slice of the forge API the browser needs. The real
// implementation lives in internal/github; tests substitute fakes.
type Client interface {
	ResolveLogin(ctx context.Context) (string, error)
	ListRepositories(ctx context.Context, account string) ([]model.Repo, error)
	ListStarred(ctx context.Context, account string) ([]model.Repo, error)
	Star(ctx context.Context, owner, name string) error
	Unstar(ctx context.Context, owner, name string) error
	Fork(ctx context.Context, owner, name string) (model.Repo, error)
	Close() error
}
