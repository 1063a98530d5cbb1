// Package journal exposes the assignment journal over HTTP.
package journal

import (
	"encoding/json"
	"net/http"
	"strconv"

	corejournal "github.com/kilianp07/ridesim/core/journal"
)

// Path is where NewHandler is mounted by the CLI.
const Path = "/api/journal"

// NewHandler returns an HTTP handler answering GET requests with the
// journal records matching the run, dataset, vehicle and job query
// parameters. Requests must include an Authorization header with
// "Bearer <token>" when token is non-empty.
func NewHandler(store corejournal.Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		params := r.URL.Query()
		q := corejournal.Query{RunID: params.Get("run"), Dataset: params.Get("dataset")}
		var err error
		if q.Vehicle, err = intParam(params.Get("vehicle")); err != nil {
			http.Error(w, "invalid vehicle", http.StatusBadRequest)
			return
		}
		if q.Job, err = intParam(params.Get("job")); err != nil {
			http.Error(w, "invalid job", http.StatusBadRequest)
			return
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []corejournal.Record{}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func intParam(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
