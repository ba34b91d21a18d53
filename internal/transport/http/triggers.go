package http

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const defaultPassesLimit = 20

func (h *Handler) handleDeliver(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.Atoi(strings.TrimPrefix(chi.URLParam(r, "number"), "#"))
	if err != nil || number <= 0 {
		writeBadRequest(w, "number must be a positive integer")
		return
	}

	ctx, cancel := h.passContext(r)
	defer cancel()

	result, err := h.deliveries.Deliver(ctx, number)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, passResultToDto(result))
}

func (h *Handler) handleSweep(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.passContext(r)
	defer cancel()

	result, err := h.deliveries.TransitionMergedStories(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, passResultToDto(result))
}

func (h *Handler) handlePasses(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: errorBody{Code: "JOURNAL_DISABLED", Message: "delivery journal is not configured"},
		})
		return
	}

	limit := defaultPassesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			writeBadRequest(w, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	records, err := h.journal.RecentPasses(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := PassesResponse{Passes: make([]PassRecordDTO, 0, len(records))}
	for _, rec := range records {
		resp.Passes = append(resp.Passes, passRecordToDto(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

// requireToken guards the admin endpoints with the webhook secret as a bearer token.
func (h *Handler) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(h.secret) > 0 {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(token), h.secret) != 1 {
				writeJSON(w, http.StatusUnauthorized, ErrorResponse{
					Error: errorBody{Code: "UNAUTHORIZED", Message: "missing or invalid token"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
