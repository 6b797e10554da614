package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	healthAPI "github.com/felipeatepam/backend-rest/internal/app/server/api/http/health"
	"github.com/felipeatepam/backend-rest/internal/app/server/api/http/middleware"
	"github.com/felipeatepam/backend-rest/internal/app/server/api/http/middleware/logger"
	"github.com/felipeatepam/backend-rest/internal/app/server/api/http/middleware/ratelimit"
	"github.com/felipeatepam/backend-rest/internal/app/server/api/http/middleware/recoverer"
	recordAPI "github.com/felipeatepam/backend-rest/internal/app/server/api/http/record"
	"github.com/felipeatepam/backend-rest/internal/config"
	"github.com/felipeatepam/backend-rest/internal/domain/record"
)

type Handlers struct {
	Health *healthAPI.Handler
	Record *recordAPI.Handler
}

// errorResponse is the single error body shape of the API:
// {"error": "<message>"}.
type errorResponse struct {
	status  int
	Message string `json:"error"`
}

func (e *errorResponse) Error() string {
	return e.Message
}

func (e *errorResponse) GetStatus() int {
	return e.status
}

func (e *errorResponse) ContentType(_ string) string {
	return "application/json"
}

func init() {
	huma.NewError = func(status int, message string, _ ...error) huma.StatusError {
		return &errorResponse{status: status, Message: message}
	}
}

// New builds the *chi.Mux with all operations registered through
// huma.Register.
func New(repo record.Repository, log *slog.Logger, cfg *config.Config) *chi.Mux {
	mux := chi.NewMux()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	mux.Use(recoverer.Middleware(log))
	if cfg.RateLimit.RPS > 0 {
		mux.Use(ratelimit.Middleware(ratelimit.Options{
			RPS:   cfg.RateLimit.RPS,
			Burst: cfg.RateLimit.Burst,
		}))
	}
	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Endpoint not found"}`))
	})

	// Assembled by hand instead of huma.DefaultConfig: its schema link
	// transformer injects a "$schema" property, and response bodies must
	// carry only their declared fields.
	humaConfig := huma.Config{
		OpenAPI: &huma.OpenAPI{
			OpenAPI: "3.1.0",
			Info: &huma.Info{
				Title:   "Record API",
				Version: "1.0.0",
			},
			Components: &huma.Components{
				Schemas: huma.NewMapRegistry("#/components/schemas/", huma.DefaultSchemaNamer),
			},
		},
		OpenAPIPath:   "/openapi",
		DocsPath:      "/docs",
		SchemasPath:   "/schemas",
		Formats:       huma.DefaultFormats,
		DefaultFormat: "application/json",
	}
	API := humachi.New(mux, humaConfig)

	h := handlers(repo, log)
	h.Health.SetupRoutes(API)
	h.Record.SetupRoutes(API)

	return mux
}

func handlers(repo record.Repository, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	recordService := record.NewService(repo, log)
	middlewares.Add(loggerMW.Middleware())
	recordHandler := recordAPI.NewHandler(recordService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Record: recordHandler,
	}
}
