package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"catalogd/internal/catalog"
	"catalogd/internal/service"
	"catalogd/internal/source"
	"catalogd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Snapshot() (*catalog.Catalog, bool)
	Refresh(ctx context.Context) error
	Status() types.StatusResponse
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(RequestLogger)
	r.Use(MetricsMiddleware)

	// @Summary      Raw-shaped model map
	// @Description  Mapping of model id to normalized record, mirroring the upstream document shape.
	r.Get("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		cat, ok := svc.Snapshot()
		if !ok {
			writeJSONError(w, http.StatusServiceUnavailable, "catalog not loaded")
			return
		}
		models, err := queryModels(cat, r.URL.Query())
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		out := make(map[string]types.ModelRecord, len(models))
		for _, m := range models {
			out[m.ID] = m.Data
		}
		writeJSON(w, out)
	})

	// @Summary      Processed catalog page
	r.Get("/v1/catalog", func(w http.ResponseWriter, r *http.Request) {
		cat, ok := svc.Snapshot()
		if !ok {
			writeJSONError(w, http.StatusServiceUnavailable, "catalog not loaded")
			return
		}
		q := r.URL.Query()
		models, err := queryModels(cat, q)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		page, err := positiveIntParam(q, "page", 1)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		size, err := positiveIntParam(q, "page_size", defaultPageSize)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		if size > maxPageSize {
			size = maxPageSize
		}
		writeJSON(w, catalog.Paginate(models, page, size))
	})

	r.Get("/v1/providers", func(w http.ResponseWriter, r *http.Request) {
		cat, ok := svc.Snapshot()
		if !ok {
			writeJSONError(w, http.StatusServiceUnavailable, "catalog not loaded")
			return
		}
		resp := types.ProvidersResponse{Providers: make([]types.ProviderInfo, 0, len(cat.Providers))}
		for _, p := range cat.Providers {
			resp.Providers = append(resp.Providers, types.ProviderInfo{Key: p, DisplayName: catalog.FormatProviderName(p)})
		}
		writeJSON(w, resp)
	})

	r.Get("/v1/providers/stats", func(w http.ResponseWriter, r *http.Request) {
		cat, ok := svc.Snapshot()
		if !ok {
			writeJSONError(w, http.StatusServiceUnavailable, "catalog not loaded")
			return
		}
		writeJSON(w, types.StatsResponse{Providers: cat.ProviderStats()})
	})

	r.Get("/v1/modes", func(w http.ResponseWriter, r *http.Request) {
		cat, ok := svc.Snapshot()
		if !ok {
			writeJSONError(w, http.StatusServiceUnavailable, "catalog not loaded")
			return
		}
		writeJSON(w, types.ModesResponse{Modes: cat.Modes})
	})

	r.Post("/v1/refresh", func(w http.ResponseWriter, r *http.Request) {
		// Join server base context with request context so shutdown cancels work too.
		ctx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		if err := svc.Refresh(ctx); err != nil {
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			switch {
			case service.IsRefreshThrottled(err):
				IncrementBackpressure("refresh")
				writeJSONError(w, http.StatusTooManyRequests, err.Error())
			case source.IsFetchError(err):
				writeJSONError(w, http.StatusBadGateway, err.Error())
			default:
				if he, ok := err.(HTTPError); ok {
					writeJSONError(w, he.StatusCode(), he.Error())
					return
				}
				writeJSONError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		writeJSON(w, svc.Status())
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

// queryModels applies the filter parameters to a snapshot: q (search, scoped
// by provider when both are present), provider, mode, capability. Filters
// compose by narrowing.
func queryModels(c *catalog.Catalog, v url.Values) ([]types.Model, error) {
	provider := v.Get("provider")
	var models []types.Model
	switch {
	case v.Get("q") != "":
		models = c.Search(v.Get("q"), provider)
	case provider != "":
		models = c.FilterByProvider(provider)
	default:
		models = c.Models
	}
	if mode := v.Get("mode"); mode != "" {
		kept := models[:0:0]
		for _, m := range models {
			if m.Data.Mode == mode {
				kept = append(kept, m)
			}
		}
		models = kept
	}
	if capName := v.Get("capability"); capName != "" {
		if !catalog.IsKnownCapability(capName) {
			return nil, fmt.Errorf("unknown capability %q", capName)
		}
		kept := models[:0:0]
		for _, m := range models {
			if catalog.HasCapability(m.Data, capName) {
				kept = append(kept, m)
			}
		}
		models = kept
	}
	return models, nil
}

func positiveIntParam(v url.Values, key string, def int) (int, error) {
	s := v.Get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
