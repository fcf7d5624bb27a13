package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/realestate/admin-gateway/internal/core/domain"
	"github.com/realestate/admin-gateway/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Recorder writes audit entries to the repository from a fixed set of
// workers, sharded by actor so one user's actions land in the order they
// happened.
type Recorder struct {
	workers []chan domain.ActivityEntry
	repo    ports.ActivityRepository
	log     zerolog.Logger
}

// NewRecorder creates a Recorder with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewRecorder(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Recorder {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &Recorder{
		workers: make([]chan domain.ActivityEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan domain.ActivityEntry, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an entry to the worker responsible for its actor. The call
// is non-blocking up to channelBuffer capacity.
func (r *Recorder) Enqueue(entry domain.ActivityEntry) {
	r.workers[r.shardIndex(entry.Actor)] <- entry
}

// shardIndex maps an actor deterministically to a worker index.
func (r *Recorder) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32()) % len(r.workers)
}

func (r *Recorder) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := r.repo.Insert(ctx, entry); err != nil {
				r.log.Error().Err(err).
					Str("actor", entry.Actor).
					Str("action", entry.Action).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}
