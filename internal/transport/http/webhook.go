package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

const (
	maxWebhookBody  = 5 << 20
	eventHeader     = "X-GitHub-Event"
	signatureHeader = "X-Hub-Signature-256"
	deliveryHeader  = "X-GitHub-Delivery"
)

func (h *Handler) handleGitHubEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeBadRequest(w, "unreadable body")
		return
	}

	if !h.validSignature(r.Header.Get(signatureHeader), body) {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{
			Error: errorBody{Code: "BAD_SIGNATURE", Message: "signature mismatch"},
		})
		return
	}

	event := r.Header.Get(eventHeader)
	log := h.log.With("event", event, "delivery", r.Header.Get(deliveryHeader))

	switch event {
	case "ping":
		writeJSON(w, http.StatusOK, StatusResponse{Status: "pong"})
		return
	case "pull_request":
	default:
		writeJSON(w, http.StatusAccepted, StatusResponse{Status: "ignored"})
		return
	}

	var evt PullRequestEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		writeBadRequest(w, "invalid JSON")
		return
	}

	number := evt.Number
	if number == 0 {
		number = evt.PullRequest.Number
	}
	log.Infow("pull request event", "action", evt.Action, "merged", evt.PullRequest.Merged, "pull", number)

	if evt.Action != "closed" || !evt.PullRequest.Merged || number <= 0 {
		writeJSON(w, http.StatusAccepted, StatusResponse{Status: "ignored"})
		return
	}

	ctx, cancel := h.passContext(r)
	defer cancel()

	result, err := h.deliveries.Deliver(ctx, number)
	if err != nil {
		log.Errorw("deliver", "pull", number, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, passResultToDto(result))
}

// validSignature checks GitHub's "sha256=<hex>" HMAC of the raw body.
func (h *Handler) validSignature(header string, body []byte) bool {
	if len(h.secret) == 0 {
		return true
	}

	sig, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}
	got, err := hex.DecodeString(sig)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, h.secret)
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}
