package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/asad/kitchenstate/internal/core"
	"github.com/asad/kitchenstate/internal/kv"
	"github.com/asad/kitchenstate/internal/logging"
)

// Repository stores all recipe days as one document under StorageKey.
//
// Reads are fail-soft: a stored document that does not decode is logged and
// treated as empty. Writes replace a single date and keep the others.
type Repository struct {
	backend kv.Backend
	logger  logging.Logger
	now     func() time.Time

	// mu serializes load-modify-store within this process.
	mu sync.Mutex
}

// Option configures a Repository.
type Option func(*Repository)

// WithClock sets the time source used by SaveToday.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository creates a recipe repository on top of backend.
func NewRepository(backend kv.Backend, logger logging.Logger, opts ...Option) *Repository {
	r := &Repository{
		backend: backend,
		logger:  logger.With(logging.String("domain", "recipe")),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns every stored day. It never writes: a missing key yields an
// empty Days, and so does a stored value that fails to decode.
// Only backend failures are returned as errors.
func (r *Repository) Load(ctx context.Context) (Days, error) {
	raw, ok, err := r.backend.GetString(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}
	if !ok || raw == "" {
		return Days{}, nil
	}

	var days Days
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		r.logger.Warn("stored recipes are unreadable, treating as empty",
			logging.ErrorField(fmt.Errorf("%w: %v", core.ErrCorruptData, err)),
		)
		return Days{}, nil
	}
	if days == nil {
		days = Days{}
	}
	for date, day := range days {
		if day.Items == nil {
			days[date] = EmptyDay()
		}
	}
	return days, nil
}

// GetByDate returns the day stored for date, or an empty day.
func (r *Repository) GetByDate(ctx context.Context, date string) (Day, error) {
	days, err := r.Load(ctx)
	if err != nil {
		return Day{}, err
	}
	day, ok := days[date]
	if !ok {
		return EmptyDay(), nil
	}
	return day, nil
}

// Dates lists the stored dates in ascending order.
func (r *Repository) Dates(ctx context.Context) ([]string, error) {
	days, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	return days.Dates(), nil
}

// SaveByDate replaces the entry for date with day and keeps every other date.
// A blank date or a day without an items list is rejected with
// core.ErrInvalidInput and nothing is written.
func (r *Repository) SaveByDate(ctx context.Context, date string, day Day) error {
	if err := validate(date, day); err != nil {
		r.logger.Error("recipe save rejected",
			logging.String("date", date),
			logging.ErrorField(err),
		)
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	days, err := r.Load(ctx)
	if err != nil {
		return err
	}
	days[date] = day

	encoded, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("encode recipes: %w", err)
	}
	if err := r.backend.SetString(ctx, StorageKey, string(encoded)); err != nil {
		return fmt.Errorf("write recipes: %w", err)
	}

	r.logger.Debug("recipe day saved",
		logging.String("date", date),
		logging.Int("items", len(day.Items)),
	)
	return nil
}

// SaveToday saves day under today's local date.
func (r *Repository) SaveToday(ctx context.Context, day Day) error {
	return r.SaveByDate(ctx, r.Today(), day)
}

// Today returns the current local date in DateLayout.
func (r *Repository) Today() string {
	return r.now().Format(DateLayout)
}

func validate(date string, day Day) error {
	if strings.TrimSpace(date) == "" {
		return fmt.Errorf("%w: date is required", core.ErrInvalidInput)
	}
	if day.Items == nil {
		return fmt.Errorf("%w: items must be a list", core.ErrInvalidInput)
	}
	return nil
}
