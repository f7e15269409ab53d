package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gridironlabs/gridiron-system/models"
	"github.com/gridironlabs/gridiron-system/services"
)

type InjuryHandler struct {
	injuryService services.InjuryService
}

func NewInjuryHandler(injuryService services.InjuryService) *InjuryHandler {
	return &InjuryHandler{injuryService: injuryService}
}

// List handles GET /injuries.
func (h *InjuryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.InjuryFilter{
		PlayerID:     r.URL.Query().Get("player_id"),
		TeamAbbr:     r.URL.Query().Get("team"),
		Verification: models.InjuryVerification(r.URL.Query().Get("verification")),
		Limit:        intQueryParam(r, "limit", 50),
		Offset:       intQueryParam(r, "offset", 0),
	}
	if raw := r.URL.Query().Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			badRequestResponse(w, r, errors.New("since must be an RFC3339 timestamp"))
			return
		}
		filter.Since = &since
	}

	injuries, err := h.injuryService.ListInjuries(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"injuries": injuries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get handles GET /injuries/{tweetID}.
func (h *InjuryHandler) Get(w http.ResponseWriter, r *http.Request) {
	tweetID, err := tweetIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	injury, err := h.injuryService.GetInjury(r.Context(), tweetID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"injury": injury}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Ingest handles POST /admin/injuries/ingest.
func (h *InjuryHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Tweets []services.TweetInput `json:"tweets"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.Tweets) == 0 {
		badRequestResponse(w, r, errors.New("tweets must not be empty"))
		return
	}

	result, err := h.injuryService.IngestTweets(r.Context(), input.Tweets)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Verify handles POST /admin/injuries/{tweetID}/verify.
func (h *InjuryHandler) Verify(w http.ResponseWriter, r *http.Request) {
	h.setVerification(w, r, h.injuryService.VerifyInjury)
}

// Reject handles POST /admin/injuries/{tweetID}/reject.
func (h *InjuryHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.setVerification(w, r, h.injuryService.RejectInjury)
}

func (h *InjuryHandler) setVerification(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, tweetID int64) error) {
	tweetID, err := tweetIDParam(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := apply(r.Context(), tweetID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SyncRoster handles POST /admin/roster/sync.
func (h *InjuryHandler) SyncRoster(w http.ResponseWriter, r *http.Request) {
	updated, err := h.injuryService.SyncRosterData(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"players_updated": updated}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func tweetIDParam(r *http.Request) (int64, error) {
	tweetID, err := strconv.ParseInt(chi.URLParam(r, "tweetID"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid tweetID parameter")
	}
	return tweetID, nil
}
