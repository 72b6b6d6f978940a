package job

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"sol-ticker/internal/domain"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultRefreshInterval is how often the current price is re-fetched.
const DefaultRefreshInterval = 60 * time.Second

// PriceFetcher is the subset of the CoinGecko client the scheduler drives.
type PriceFetcher interface {
	FetchCurrentPrice(ctx context.Context) (float64, error)
	FetchHistoricalPrices(ctx context.Context) (domain.PriceSeries, error)
}

// PriceCallback receives either a price or an error, never both.
type PriceCallback func(price float64, err error)

// HistoryCallback receives either a series or an error, never both.
type HistoryCallback func(series domain.PriceSeries, err error)

// ParseSchedule accepts any robfig/cron standard spec, including
// descriptors such as "@every 60s". An empty spec means every interval.
func ParseSchedule(spec string, interval time.Duration) (cron.Schedule, error) {
	if spec == "" {
		if interval <= 0 {
			interval = DefaultRefreshInterval
		}
		return cron.Every(interval), nil
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse refresh schedule %q: %w", spec, err)
	}
	return schedule, nil
}

// RefreshScheduler fetches the price and history once at start, then the
// price on every tick of its schedule. History is never refreshed.
//
// Overlapping fetches are allowed. Results reach the callbacks in network
// completion order, so a slow older fetch can overwrite a newer price unless
// stale dropping is enabled.
type RefreshScheduler struct {
	tracer    trace.Tracer
	fetcher   PriceFetcher
	schedule  cron.Schedule
	dropStale bool
}

// Option configures a RefreshScheduler.
type Option func(*RefreshScheduler)

// WithDropStale discards price results issued before the last delivered one.
func WithDropStale(enabled bool) Option {
	return func(s *RefreshScheduler) {
		s.dropStale = enabled
	}
}

// NewRefreshScheduler ticks on schedule; see ParseSchedule.
func NewRefreshScheduler(tracer trace.Tracer, fetcher PriceFetcher, schedule cron.Schedule, opts ...Option) *RefreshScheduler {
	s := &RefreshScheduler{
		tracer:   tracer,
		fetcher:  fetcher,
		schedule: schedule,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle controls a running scheduler.
type Handle struct {
	cancel  context.CancelFunc
	stopped atomic.Bool
	done    chan struct{}
	results chan result
	seq     priceSequencer
	once    sync.Once
}

// Cancel stops future ticks. A callback the dispatcher is already handing
// off may still start, but none start after Done is closed. Fetches already
// on the wire finish and their results are dropped. Safe to call more than
// once and from inside a callback.
func (h *Handle) Cancel() {
	h.once.Do(func() {
		h.stopped.Store(true)
		h.cancel()
	})
}

// Done is closed when the dispatcher has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

type result struct {
	seq     uint64
	price   *float64
	series  domain.PriceSeries
	err     error
	history bool
}

// Start begins fetching and returns immediately. Callbacks are invoked one
// at a time from a single goroutine.
func (s *RefreshScheduler) Start(ctx context.Context, onPrice PriceCallback, onHistory HistoryCallback) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		cancel:  cancel,
		done:    make(chan struct{}),
		results: make(chan result),
	}

	go s.dispatch(ctx, h, onPrice, onHistory)

	go s.fetchPrice(ctx, h)
	go s.fetchHistory(ctx, h)
	go s.tickLoop(ctx, h)

	log.Println("Refresh scheduler started")
	return h
}

func (s *RefreshScheduler) tickLoop(ctx context.Context, h *Handle) {
	timer := time.NewTimer(time.Until(s.schedule.Next(time.Now())))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			go s.fetchPrice(ctx, h)
			timer.Reset(time.Until(s.schedule.Next(time.Now())))
		}
	}
}

// fetchPrice runs on a context detached from cancellation so Cancel never
// aborts a request in flight.
func (s *RefreshScheduler) fetchPrice(ctx context.Context, h *Handle) {
	seq := h.seq.issue()
	fetchCtx, span := s.tracer.Start(context.WithoutCancel(ctx), "refresh-scheduler.price")
	span.SetAttributes(attribute.Int64("refresh.seq", int64(seq)))
	defer span.End()

	price, err := s.fetcher.FetchCurrentPrice(fetchCtx)
	r := result{seq: seq, err: err}
	if err != nil {
		log.Printf("refresh scheduler price fetch error: %v", err)
	} else {
		r.price = &price
	}
	h.send(ctx, r)
}

func (s *RefreshScheduler) fetchHistory(ctx context.Context, h *Handle) {
	fetchCtx, span := s.tracer.Start(context.WithoutCancel(ctx), "refresh-scheduler.history")
	defer span.End()

	series, err := s.fetcher.FetchHistoricalPrices(fetchCtx)
	if err != nil {
		log.Printf("refresh scheduler history fetch error: %v", err)
		series = nil
	}
	h.send(ctx, result{history: true, series: series, err: err})
}

func (h *Handle) send(ctx context.Context, r result) {
	select {
	case h.results <- r:
	case <-ctx.Done():
	}
}

func (s *RefreshScheduler) dispatch(ctx context.Context, h *Handle, onPrice PriceCallback, onHistory HistoryCallback) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			log.Println("Refresh scheduler stopped")
			return
		case r := <-h.results:
			if h.stopped.Load() || ctx.Err() != nil {
				continue
			}
			if r.history {
				if onHistory != nil {
					onHistory(r.series, r.err)
				}
				continue
			}
			if s.dropStale && !h.seq.accept(r.seq) {
				log.Printf("refresh scheduler dropped stale price result #%d", r.seq)
				continue
			}
			if onPrice != nil {
				if r.err != nil {
					onPrice(0, r.err)
				} else {
					onPrice(*r.price, nil)
				}
			}
		}
	}
}

// priceSequencer numbers price fetches in issue order and remembers the
// newest one delivered.
type priceSequencer struct {
	next      atomic.Uint64
	delivered uint64
}

func (q *priceSequencer) issue() uint64 {
	return q.next.Add(1)
}

// accept is only called from the dispatcher goroutine.
func (q *priceSequencer) accept(seq uint64) bool {
	if seq < q.delivered {
		return false
	}
	q.delivered = seq
	return true
}
