package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tally/internal/model"
	"github.com/theirongolddev/tally/internal/store"
)

type stubLoader struct {
	months store.Months
	err    error
}

func (l *stubLoader) Load(context.Context) (store.Months, error) {
	return l.months, l.err
}

func newTestService(t *testing.T, l *stubLoader) *Service {
	t.Helper()
	s := New(Config{Interval: 10 * time.Second, Source: "test", EventsBuffer: 2}, l, nil)
	s.now = func() time.Time { return time.Date(2024, time.April, 10, 12, 0, 0, 0, time.UTC) }
	return s
}

func aprilStore() store.Months {
	income := model.Income{Amount: decimal.NewFromInt(3000), Type: model.IncomeSalary, Frequency: model.Monthly}
	return store.NewMonths().Update("2024-04", model.Patch{
		Income:   &income,
		Spending: model.Spending{"food": decimal.NewFromInt(950)},
	})
}

func TestPollOncePublishesOnChangeOnly(t *testing.T) {
	l := &stubLoader{months: aprilStore()}
	s := newTestService(t, l)

	s.PollOnce(context.Background())
	s.PollOnce(context.Background())

	s.mu.RLock()
	require.Len(t, s.events, 1)
	assert.Equal(t, EventSnapshot, s.events[0].Type)
	s.mu.RUnlock()

	l.months = l.months.Update("2024-04", model.Patch{Spending: model.Spending{}})
	s.PollOnce(context.Background())

	st := s.snapshotStatus()
	assert.Equal(t, int64(3), st.PollCount)
	assert.Equal(t, 2, st.EventCount)
	assert.Equal(t, 0, st.Summary.OverCount)
}

func TestPollOnceRecordsError(t *testing.T) {
	l := &stubLoader{err: errors.New("locked")}
	s := newTestService(t, l)

	s.PollOnce(context.Background())
	st := s.snapshotStatus()
	assert.Equal(t, "locked", st.LastError)
	assert.Equal(t, 0, st.EventCount)
}

func TestSnapshotOfCurrentMonth(t *testing.T) {
	s := newTestService(t, &stubLoader{months: aprilStore()})
	s.PollOnce(context.Background())

	sum := s.snapshotStatus().Summary
	assert.Equal(t, model.MonthKey("2024-04"), sum.Month)
	assert.Equal(t, 1, sum.StoredMonths)
	assert.True(t, sum.MonthlyIncome.Equal(decimal.NewFromInt(3000)))
	assert.True(t, sum.TotalSpent.Equal(decimal.NewFromInt(950)))
	assert.Equal(t, 1, sum.OverCount, "food budget is 900")
	assert.True(t, sum.Balanced)
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := newTestService(t, &stubLoader{})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	require.Len(t, s.events, 2)
	assert.Equal(t, int64(2), s.events[0].ID)
	assert.Equal(t, int64(3), s.events[1].ID)
}

func TestHandlerRoutes(t *testing.T) {
	s := newTestService(t, &stubLoader{months: aprilStore()})
	s.PollOnce(context.Background())
	h := s.Handler()

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())

	rec = get("/v1/months")
	require.Equal(t, http.StatusOK, rec.Code)
	var months []MonthEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&months))
	require.Len(t, months, 1)
	assert.Equal(t, "April 2024", months[0].Label)

	rec = get("/v1/months/2024-04/report")
	require.Equal(t, http.StatusOK, rec.Code)
	var report model.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, 30, report.Days)
	require.Len(t, report.Budgets, 6)
	assert.True(t, report.Budgets[0].Monthly.Equal(decimal.NewFromInt(900)))
	assert.True(t, report.Budgets[0].Daily.Equal(decimal.NewFromInt(30)))

	rec = get("/v1/months/2024-07")
	require.Equal(t, http.StatusOK, rec.Code)
	var view MonthView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.False(t, view.Stored)
	assert.True(t, view.Record.Income.Amount.Equal(decimal.NewFromInt(3000)), "carried forward")
	assert.Empty(t, view.Record.Spending)

	rec = get("/v1/months/2024-13/report")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var e ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
	assert.Equal(t, "invalid month", e.Error)

	rec = get("/v1/status")
	require.Equal(t, http.StatusOK, rec.Code)
	var st Status
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.Equal(t, "test", st.Source)
}

func TestPollOnceSeedsEmptyStoreWithDefaultIncome(t *testing.T) {
	seed := model.Income{Type: model.IncomeSalary, Frequency: model.Weekly}
	s := New(Config{Source: "test", DefaultIncome: &seed}, &stubLoader{months: store.NewMonths()}, nil)
	s.PollOnce(context.Background())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/months/2024-05", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var view MonthView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.False(t, view.Stored)
	assert.Equal(t, model.Weekly, view.Record.Income.Frequency)
	assert.Equal(t, model.IncomeSalary, view.Record.Income.Type)
}
