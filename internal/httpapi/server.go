package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reinforce/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Settings() types.SettingsResponse
	Checkpoints() (types.CheckpointsResponse, error)
	LatestCheckpoint() (types.Checkpoint, bool, error)
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(AccessLog)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Settings())
	})

	r.Get("/checkpoints", func(w http.ResponseWriter, r *http.Request) {
		resp, err := svc.Checkpoints()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	r.Get("/checkpoints/latest", func(w http.ResponseWriter, r *http.Request) {
		cp, ok, err := svc.LatestCheckpoint()
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !ok {
			writeJSONError(w, http.StatusNotFound, "no checkpoint found")
			return
		}
		writeJSON(w, http.StatusOK, types.CheckpointResponse{Checkpoint: cp})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	b, err := json.Marshal(v)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}
