package syncer

import (
	"context"

	"recruit-match/internal/models"

	"golang.org/x/sync/singleflight"
)

// gate collapses concurrent sync requests onto a single in-flight pass. All
// waiters receive the shared pass's result.
type gate struct {
	group singleflight.Group
}

func (g *gate) do(ctx context.Context, fn func(context.Context) (*models.SyncResult, error)) (*models.SyncResult, error) {
	v, err, _ := g.group.Do("sync", func() (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return nil, err
	}

	result, _ := v.(*models.SyncResult)
	return result, nil
}
