// Package daemon serves a read-only HTTP view of the budget store and polls
// it for edits made by other tally processes.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/tally/internal/log"
	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Addr           string
	Interval       time.Duration
	Source         string // shown in status, e.g. the data file path
	EventsBuffer   int
	AllowedOrigins []string
	// DefaultIncome, when set, seeds months of an empty store.
	DefaultIncome *model.Income
}

// Loader reads the whole store. store.Persister satisfies it.
type Loader interface {
	Load(ctx context.Context) (store.Months, error)
}

// Snapshot summarizes the current calendar month.
type Snapshot struct {
	At             time.Time       `json:"at"`
	Month          model.MonthKey  `json:"month"`
	StoredMonths   int             `json:"stored_months"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	TotalBudgeted  decimal.Decimal `json:"total_budgeted"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	OverCount      int             `json:"over_count"`
	Balanced       bool            `json:"balanced"`
	GoalTight      bool            `json:"goal_tight"`
}

// Event is emitted when the store is first read and whenever it changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
}

// Event types.
const (
	EventSnapshot = "snapshot"
	EventChanged  = "budget_changed"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	Source          string    `json:"source"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// MonthEntry is one row of /v1/months.
type MonthEntry struct {
	Month          model.MonthKey  `json:"month"`
	Label          string          `json:"label"`
	MonthlyIncome  decimal.Decimal `json:"monthly_income"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	TotalRemaining decimal.Decimal `json:"total_remaining"`
	OverCount      int             `json:"over_count"`
}

// MonthView is served at /v1/months/{month}.
type MonthView struct {
	Month  model.MonthKey    `json:"month"`
	Stored bool              `json:"stored"`
	Record model.MonthRecord `json:"record"`
}

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg    Config
	loader Loader
	log    *log.Logger
	now    func() time.Time

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	months      store.Months
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service reading from loader.
func New(cfg Config, loader Loader, logger *log.Logger) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = 5 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:7420"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	if logger == nil {
		logger = log.Discard()
	}

	return &Service{
		cfg:       cfg,
		loader:    loader,
		log:       logger.WithComponent("daemon"),
		now:       time.Now,
		startedAt: time.Now(),
		months:    store.NewMonths(),
		subs:      make(map[int]chan Event),
	}
}

// Run serves HTTP and polls until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("daemon http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return s.Poll(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Poll reloads the store immediately and then on every interval until ctx ends.
func (s *Service) Poll(ctx context.Context) error {
	s.PollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.PollOnce(ctx)
		}
	}
}

// PollOnce reloads the store and publishes an event if anything changed.
func (s *Service) PollOnce(ctx context.Context) {
	months, err := s.loader.Load(ctx)
	now := s.now()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.Warn("poll failed", "error", err)
		return
	}

	if s.cfg.DefaultIncome != nil {
		months = months.WithDefaultIncome(*s.cfg.DefaultIncome)
	}
	snap := snapshotOf(months, model.MonthKeyOf(now), now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prevExists := s.hasSnapshot
	changed := !s.months.Equal(months)

	s.hasSnapshot = true
	s.months = months
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists || changed {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventChanged, Timestamp: now, Snapshot: snap}
		if !prevExists {
			ev.Type = EventSnapshot
		}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		s.log.Debug("store changed", "event", ev.Type, "months", snap.StoredMonths)
		s.publishEvent(ev)
	}
}

func snapshotOf(months store.Months, month model.MonthKey, at time.Time) Snapshot {
	r := pipeline.BuildReport(month, months.Get(month))
	return Snapshot{
		At:             at,
		Month:          month,
		StoredMonths:   months.Len(),
		MonthlyIncome:  r.MonthlyIncome,
		TotalBudgeted:  r.TotalBudgeted,
		TotalSpent:     r.TotalSpent,
		TotalRemaining: r.TotalRemaining,
		OverCount:      r.OverCount,
		Balanced:       r.Balanced,
		GoalTight:      r.Goal.Active && r.Goal.Tight,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		Source:          s.cfg.Source,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) currentMonths() store.Months {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.months
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(log.Middleware(s.log, func(r *http.Request) string { return middleware.GetReqID(r.Context()) }))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/events", s.handleEvents)
		r.Get("/stream", s.handleStream)
		r.Get("/months", s.handleListMonths)
		r.Get("/months/{month}", s.handleGetMonth)
		r.Get("/months/{month}/report", s.handleReport)
	})

	return r
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleListMonths(w http.ResponseWriter, _ *http.Request) {
	months := s.currentMonths()
	out := make([]MonthEntry, 0, months.Len())
	for _, key := range months.Keys() {
		r := pipeline.BuildReport(key, months.Get(key))
		out = append(out, MonthEntry{
			Month:          key,
			Label:          key.Label(),
			MonthlyIncome:  r.MonthlyIncome,
			TotalSpent:     r.TotalSpent,
			TotalRemaining: r.TotalRemaining,
			OverCount:      r.OverCount,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) handleGetMonth(w http.ResponseWriter, r *http.Request) {
	key, err := model.ParseMonthKey(chi.URLParam(r, "month"))
	if err != nil {
		log.FromContext(r.Context()).Debug("rejected month", "error", err)
		writeError(w, http.StatusBadRequest, "invalid month", err)
		return
	}
	months := s.currentMonths()
	writeJSON(w, http.StatusOK, MonthView{
		Month:  key,
		Stored: months.Has(key),
		Record: months.Get(key),
	})
}

func (s *Service) handleReport(w http.ResponseWriter, r *http.Request) {
	key, err := model.ParseMonthKey(chi.URLParam(r, "month"))
	if err != nil {
		log.FromContext(r.Context()).Debug("rejected month", "error", err)
		writeError(w, http.StatusBadRequest, "invalid month", err)
		return
	}
	writeJSON(w, http.StatusOK, pipeline.BuildReport(key, s.currentMonths().Get(key)))
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	rl := log.FromContext(r.Context())
	rl.Debug("stream subscriber joined", "subscriber", id)
	defer rl.Debug("stream subscriber left", "subscriber", id)

	current := Event{
		Type:      EventSnapshot,
		Timestamp: s.now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
