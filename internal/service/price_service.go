package service

import (
	"context"
	"sync"
	"time"

	"sol-ticker/internal/chart"
	"sol-ticker/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Status is the display state of one widget section.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// PriceState is the latest result of a current-price fetch.
type PriceState struct {
	Status    Status
	Price     float64
	Err       error
	UpdatedAt time.Time
}

// HistoryState is the latest result of a historical-prices fetch.
type HistoryState struct {
	Status    Status
	Series    domain.PriceSeries
	Err       error
	UpdatedAt time.Time
}

// Snapshot is a consistent copy of everything the widget displays.
type Snapshot struct {
	Price   PriceState
	History HistoryState
}

// PriceService holds the widget's displayed state. The refresh scheduler
// writes it through OnPriceUpdate and OnHistoryUpdate; every completion
// replaces the previous state of that section wholesale.
type PriceService struct {
	tracer trace.Tracer
	now    func() time.Time

	mu     sync.RWMutex
	snap   Snapshot
	subs   map[int]chan struct{}
	nextID int
}

func NewPriceService(tracer trace.Tracer) *PriceService {
	return &PriceService{
		tracer: tracer,
		now:    time.Now,
		snap: Snapshot{
			Price:   PriceState{Status: StatusLoading},
			History: HistoryState{Status: StatusLoading},
		},
		subs: make(map[int]chan struct{}),
	}
}

// OnPriceUpdate is a job.PriceCallback.
func (s *PriceService) OnPriceUpdate(price float64, err error) {
	state := PriceState{Status: StatusReady, Price: price, UpdatedAt: s.now()}
	if err != nil {
		state = PriceState{Status: StatusError, Err: err, UpdatedAt: state.UpdatedAt}
	}

	s.mu.Lock()
	s.snap.Price = state
	s.notifyLocked()
	s.mu.Unlock()
}

// OnHistoryUpdate is a job.HistoryCallback.
func (s *PriceService) OnHistoryUpdate(series domain.PriceSeries, err error) {
	state := HistoryState{Status: StatusReady, Series: series, UpdatedAt: s.now()}
	if err != nil {
		state = HistoryState{Status: StatusError, Err: err, UpdatedAt: state.UpdatedAt}
	}

	s.mu.Lock()
	s.snap.History = state
	s.notifyLocked()
	s.mu.Unlock()
}

func (s *PriceService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// GetCurrentPrice returns the displayed price state.
func (s *PriceService) GetCurrentPrice(ctx context.Context) PriceState {
	_, span := s.tracer.Start(ctx, "price-service.get-current-price")
	defer span.End()

	state := s.Snapshot().Price
	span.SetAttributes(attribute.String("price.status", string(state.Status)))
	return state
}

// GetHistory returns the displayed history state.
func (s *PriceService) GetHistory(ctx context.Context) HistoryState {
	_, span := s.tracer.Start(ctx, "price-service.get-history")
	defer span.End()

	state := s.Snapshot().History
	span.SetAttributes(attribute.String("history.status", string(state.Status)))
	return state
}

// GetChart lays out the displayed series on a width x height canvas. The
// layout is only meaningful when the returned state is ready.
func (s *PriceService) GetChart(ctx context.Context, width, height, padding float64) (chart.Layout, HistoryState) {
	_, span := s.tracer.Start(ctx, "price-service.get-chart")
	defer span.End()

	state := s.Snapshot().History
	span.SetAttributes(
		attribute.String("history.status", string(state.Status)),
		attribute.Int("series.length", len(state.Series)),
	)
	return chart.Compute(state.Series, width, height, padding), state
}

// Subscribe returns a channel that receives a value after every state
// change. Notifications coalesce; read Snapshot for the current state.
// The returned func unsubscribes and closes the channel.
func (s *PriceService) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
}

func (s *PriceService) notifyLocked() {
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
