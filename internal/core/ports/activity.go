package ports

import (
	"context"

	"github.com/realestate/admin-gateway/internal/core/domain"
)

// ActivityRepository persists the gateway's audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, entry domain.ActivityEntry) error
	List(ctx context.Context, page, pageSize int) ([]domain.ActivityEntry, int64, error)
}

// ActivityQueue hands entries to the background writers so recording never
// blocks the request path.
type ActivityQueue interface {
	Enqueue(entry domain.ActivityEntry)
}

// ActivityService records and queries audit entries. Record must not block
// the calling request path.
type ActivityService interface {
	Record(entry domain.ActivityEntry)
	List(ctx context.Context, page, pageSize int) (*domain.Page[domain.ActivityEntry], error)
}
