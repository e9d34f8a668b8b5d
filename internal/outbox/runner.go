package outbox

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Deliverer hands pending outbox records to their consumer.
type Deliverer interface {
	DeliverPending(ctx context.Context, limit int) (int, error)
}

// Runner retries undelivered match_completed records on a cron schedule.
type Runner struct {
	cron      *cron.Cron
	deliverer Deliverer
	batchSize int
	logger    *zap.Logger
	baseCtx   context.Context

	mu      sync.Mutex
	running bool
}

func New(deliverer Deliverer, batchSize int, logger *zap.Logger, baseCtx context.Context) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cron:      cron.New(cron.WithSeconds()),
		deliverer: deliverer,
		batchSize: batchSize,
		logger:    logger,
		baseCtx:   baseCtx,
	}
}

// Schedule registers the relay job. spec uses the six-field cron format.
func (r *Runner) Schedule(spec string) (cron.EntryID, error) {
	return r.cron.AddFunc(spec, func() { r.RunOnce(r.baseCtx) })
}

// RunOnce performs one relay pass. Overlapping passes are skipped.
func (r *Runner) RunOnce(ctx context.Context) int {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return 0
	}
	r.running = true
	r.mu.Unlock()
	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	n, err := r.deliverer.DeliverPending(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("outbox relay", zap.Error(err))
	}
	if n > 0 {
		r.logger.Info("outbox relay delivered", zap.Int("count", n))
	}
	return n
}

func (r *Runner) Start() {
	r.logger.Info("outbox relay started")
	r.cron.Start()
}

func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("outbox relay stopped")
}
