package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/core/ports"
)

// ActivityService records the gateway's audit trail. Writes go through the
// background queue so a slow Mongo never delays a user request.
type ActivityService struct {
	repo  ports.ActivityRepository
	queue ports.ActivityQueue
	now   func() time.Time
}

// NewActivityService creates an ActivityService. If now is nil, time.Now is
// used.
func NewActivityService(repo ports.ActivityRepository, queue ports.ActivityQueue, now func() time.Time) *ActivityService {
	if now == nil {
		now = time.Now
	}
	return &ActivityService{repo: repo, queue: queue, now: now}
}

// Record fills in the entry identity and timestamp when absent and hands it
// to the background writers.
func (s *ActivityService) Record(entry domain.ActivityEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At.IsZero() {
		entry.At = s.now().UTC()
	}
	s.queue.Enqueue(entry)
}

func (s *ActivityService) List(ctx context.Context, page, pageSize int) (*domain.Page[domain.ActivityEntry], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	items, total, err := s.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.Page[domain.ActivityEntry]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}
