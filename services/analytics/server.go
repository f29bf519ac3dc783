package analytics

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
)

// NewServeMux exposes the query surface as plain JSON over HTTP for the
// dashboard frontend.
func NewServeMux(svc Service) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /overview", func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.Overview(r.Context())
		respond(w, r, out, err)
	})
	mux.HandleFunc("GET /trends", func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.Trends(r.Context())
		respond(w, r, out, err)
	})
	mux.HandleFunc("GET /distribution", func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.PaceDistribution(r.Context())
		respond(w, r, out, err)
	})
	mux.HandleFunc("GET /partners", func(w http.ResponseWriter, r *http.Request) {
		tolerance := 15
		if raw := r.URL.Query().Get("tolerance"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				http.Error(w, "invalid tolerance", http.StatusBadRequest)
				return
			}
			tolerance = parsed
		}
		out, err := svc.PacePartners(r.Context(), r.URL.Query().Get("pace"), tolerance)
		if errors.Is(err, ErrBadPace) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respond(w, r, out, err)
	})
	mux.HandleFunc("GET /runners", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "missing name", http.StatusBadRequest)
			return
		}
		out, err := svc.RunnerHistory(r.Context(), name)
		respond(w, r, out, err)
	})
	mux.HandleFunc("GET /halloffame", func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.HallOfFame(r.Context())
		respond(w, r, out, err)
	})

	return mux
}

func respond(w http.ResponseWriter, r *http.Request, payload any, err error) {
	if err != nil {
		slog.ErrorContext(r.Context(), "query failed", "path", r.URL.Path, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("content-type", "application/json")
	err = json.NewEncoder(w).Encode(payload)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", "path", r.URL.Path, "err", err)
	}
}
