package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"trackersync/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type DeliveryService interface {
	Deliver(ctx context.Context, pullNumber int) (domain.PassResult, error)
	TransitionMergedStories(ctx context.Context) (domain.PassResult, error)
}

type JournalReader interface {
	RecentPasses(ctx context.Context, limit int) ([]domain.PassRecord, error)
}

// DefaultPassTimeout bounds a pass started from a request.
const DefaultPassTimeout = 10 * time.Minute

type Handler struct {
	deliveries  DeliveryService
	journal     JournalReader
	secret      []byte
	passTimeout time.Duration
	log         *zap.SugaredLogger
}

type Option func(*Handler)

func WithPassTimeout(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.passTimeout = d
		}
	}
}

// NewHandler wires the webhook and admin endpoints. journal may be nil when no
// delivery journal is configured; an empty secret disables signature and
// token checks.
func NewHandler(log *zap.SugaredLogger, deliveries DeliveryService, journal JournalReader, secret string, opts ...Option) *Handler {
	h := &Handler{
		deliveries:  deliveries,
		journal:     journal,
		secret:      []byte(secret),
		passTimeout: DefaultPassTimeout,
		log:         log.Named("http"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// passContext detaches a pass from the caller's connection. A sender that
// hangs up (GitHub gives up after ~10s) must not stop the stories still
// queued in the pass; only the pass timeout does.
func (h *Handler) passContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(r.Context()), h.passTimeout)
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(requestLogger(h.log))
	router.Use(middleware.Recoverer)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Well, Hello there!"))
	})

	router.Post("/github", h.handleGitHubEvent)

	router.Group(func(r chi.Router) {
		r.Use(h.requireToken)
		r.Post("/deliver/{number}", h.handleDeliver)
		r.Post("/sweep", h.handleSweep)
		r.Get("/passes", h.handlePasses)
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return router
}

// Helpers

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, body := mappingDomainErrors(err)
	writeJSON(w, status, body)
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error: errorBody{
			Code:    "BAD_REQUEST",
			Message: message,
		},
	})
}
