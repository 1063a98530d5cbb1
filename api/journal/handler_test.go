package journal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	corejournal "github.com/kilianp07/ridesim/core/journal"
)

type memStore struct{ recs []corejournal.Record }

func (m *memStore) Append(_ context.Context, r corejournal.Record) error {
	m.recs = append(m.recs, r)
	return nil
}

func (m *memStore) Query(_ context.Context, q corejournal.Query) ([]corejournal.Record, error) {
	var res []corejournal.Record
	for _, r := range m.recs {
		if q.Match(r) {
			res = append(res, r)
		}
	}
	return res, nil
}

func (m *memStore) Close() error { return nil }

func newStore(t *testing.T) *memStore {
	t.Helper()
	store := &memStore{}
	for i, v := range []int{0, 1, 1} {
		if err := store.Append(context.Background(), corejournal.Record{
			Timestamp: time.Now(),
			RunID:     "run-1",
			Dataset:   "a_example",
			Tick:      1,
			Job:       i,
			Vehicle:   v,
		}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	return store
}

func get(h http.Handler, url, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandler_AuthAndFilters(t *testing.T) {
	h := NewHandler(newStore(t), "tok")

	rr := get(h, Path+"?vehicle=1&run=run-1", "tok")
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var out []corejournal.Record
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}

	rr = get(h, Path+"?job=0", "tok")
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].Vehicle != 0 {
		t.Fatalf("unexpected records %+v", out)
	}

	if rr = get(h, Path, ""); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestHandler_BadRequests(t *testing.T) {
	h := NewHandler(newStore(t), "")
	if rr := get(h, Path+"?vehicle=x", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	req := httptest.NewRequest(http.MethodPost, Path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", rr.Code)
	}
}

func TestHandler_EmptyResultIsArray(t *testing.T) {
	h := NewHandler(newStore(t), "")
	rr := get(h, Path+"?run=missing", "")
	if body := rr.Body.String(); body != "[]\n" {
		t.Fatalf("unexpected body %q", body)
	}
}
