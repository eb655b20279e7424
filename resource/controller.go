package resource

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/prealloc"
	"github.com/hupe1980/prealloc/internal/conv"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

var (
	// ErrMemoryLimitExceeded is returned when the global memory limit would be exceeded.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")
	// ErrTagLimitExceeded is returned when a tag's memory limit would be exceeded.
	ErrTagLimitExceeded = errors.New("tag memory limit exceeded")
	// ErrRateLimited is returned when grants exceed the configured allocation rate.
	ErrRateLimited = errors.New("allocation rate exceeded")
)

// TagUsage is a snapshot of the accounting for one tag.
type TagUsage struct {
	Bytes    int64 // currently granted
	Limit    int64 // 0 if unlimited
	Allocs   int64 // successful grants
	Releases int64
	Refused  int64
}

type tagState struct {
	sem      *semaphore.Weighted // nil if unlimited
	limit    int64
	used     atomic.Int64
	allocs   atomic.Int64
	releases atomic.Int64
	refused  atomic.Int64
}

// Controller is a prealloc.Allocator that enforces memory budgets.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Grant rate
	limiter *rate.Limiter

	logger *slog.Logger

	mu   sync.RWMutex
	tags map[prealloc.Tag]*tagState
}

var _ prealloc.Allocator = (*Controller)(nil)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger logs refused grants at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// NewController creates a new resource controller.
// Limits that are zero are not enforced; usage is still tracked.
func NewController(cfg Config, opts ...Option) *Controller {
	cfg.TagLimits = maps.Clone(cfg.TagLimits)

	c := &Controller{
		cfg:  cfg,
		tags: make(map[prealloc.Tag]*tagState),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.AllocBytesPerSec > 0 {
		burst, err := conv.Int64ToInt(cfg.AllocBytesPerSec)
		if err != nil {
			burst = math.MaxInt
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.AllocBytesPerSec), burst)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Controller) stateFor(tag prealloc.Tag) *tagState {
	c.mu.RLock()
	ts, ok := c.tags[tag]
	c.mu.RUnlock()
	if ok {
		return ts
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ts, ok := c.tags[tag]; ok {
		return ts
	}
	ts = &tagState{limit: c.cfg.TagLimits[tag]}
	if ts.limit > 0 {
		ts.sem = semaphore.NewWeighted(ts.limit)
	}
	c.tags[tag] = ts
	return ts
}

// Allocate implements prealloc.Allocator.
//
// It is non-blocking: if the global limit, the tag's limit or the grant
// rate would be exceeded it returns immediately with an error wrapping
// ErrMemoryLimitExceeded, ErrTagLimitExceeded or ErrRateLimited, and
// nothing is charged. Callers control retry/backoff policy.
func (c *Controller) Allocate(tag prealloc.Tag, bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	ts := c.stateFor(tag)

	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return c.refuse(ts, tag, bytes, ErrMemoryLimitExceeded)
	}

	if ts.sem != nil && !ts.sem.TryAcquire(bytes) {
		if c.memSem != nil {
			c.memSem.Release(bytes)
		}
		return c.refuse(ts, tag, bytes, ErrTagLimitExceeded)
	}

	if c.limiter != nil && !c.allowRate(bytes) {
		if ts.sem != nil {
			ts.sem.Release(bytes)
		}
		if c.memSem != nil {
			c.memSem.Release(bytes)
		}
		return c.refuse(ts, tag, bytes, ErrRateLimited)
	}

	c.memUsed.Add(bytes)
	ts.used.Add(bytes)
	ts.allocs.Add(1)
	return nil
}

func (c *Controller) allowRate(bytes int64) bool {
	n, err := conv.Int64ToInt(bytes)
	if err != nil {
		return false
	}
	return c.limiter.AllowN(time.Now(), n)
}

func (c *Controller) refuse(ts *tagState, tag prealloc.Tag, bytes int64, cause error) error {
	ts.refused.Add(1)
	if c.logger != nil {
		c.logger.Warn("allocation refused",
			"tag", string(tag),
			"bytes", bytes,
			"memory_used", c.memUsed.Load(),
			"tag_used", ts.used.Load(),
			"error", cause,
		)
	}
	return fmt.Errorf("%w: tag %q requested %d bytes", cause, tag, bytes)
}

// Release implements prealloc.Allocator.
func (c *Controller) Release(tag prealloc.Tag, bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	ts := c.stateFor(tag)
	// Counters drop before the budget is handed back so that usage never
	// reads above the limit.
	c.memUsed.Add(-bytes)
	ts.used.Add(-bytes)
	ts.releases.Add(1)
	if ts.sem != nil {
		ts.sem.Release(bytes)
	}
	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// TagUsage returns the accounting for tag. Unknown tags report zero usage.
func (c *Controller) TagUsage(tag prealloc.Tag) TagUsage {
	if c == nil {
		return TagUsage{}
	}
	c.mu.RLock()
	ts, ok := c.tags[tag]
	c.mu.RUnlock()
	if !ok {
		return TagUsage{Limit: c.cfg.TagLimits[tag]}
	}
	return TagUsage{
		Bytes:    ts.used.Load(),
		Limit:    ts.limit,
		Allocs:   ts.allocs.Load(),
		Releases: ts.releases.Load(),
		Refused:  ts.refused.Load(),
	}
}

// Tags returns every tag seen so far, sorted.
func (c *Controller) Tags() []prealloc.Tag {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.tags))
}
