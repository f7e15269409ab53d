package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gridironlabs/gridiron-system/models"
	"github.com/gridironlabs/gridiron-system/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
	rosterService services.RosterService
	propService   services.PropService
}

func NewPlayerHandler(playerService services.PlayerService, rosterService services.RosterService, propService services.PropService) *PlayerHandler {
	return &PlayerHandler{
		playerService: playerService,
		rosterService: rosterService,
		propService:   propService,
	}
}

// List handles GET /players.
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.PlayerFilter{
		TeamAbbr: r.URL.Query().Get("team"),
		Position: r.URL.Query().Get("position"),
		Status:   r.URL.Query().Get("status"),
		Search:   r.URL.Query().Get("search"),
		Limit:    intQueryParam(r, "limit", 100),
		Offset:   intQueryParam(r, "offset", 0),
	}

	players, err := h.playerService.ListPlayers(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get handles GET /players/{gsisID}.
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	player, err := h.playerService.GetPlayer(r.Context(), chi.URLParam(r, "gsisID"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Upsert handles PUT /admin/players.
func (h *PlayerHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var player models.Player
	if err := readJSON(w, r, &player); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.playerService.UpsertPlayer(r.Context(), &player); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete handles DELETE /admin/players/{gsisID}.
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.playerService.DeletePlayer(r.Context(), chi.URLParam(r, "gsisID")); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadHeadshot handles POST /admin/players/{gsisID}/headshot. The image
// is the raw request body; the content type selects the stored format.
func (h *PlayerHandler) UploadHeadshot(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("Content-Type header is required"))
		return
	}

	player, err := h.playerService.UploadHeadshot(r.Context(), chi.URLParam(r, "gsisID"), contentType, r.Body)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SeasonRoster handles GET /players/{gsisID}/roster?season=.
func (h *PlayerHandler) SeasonRoster(w http.ResponseWriter, r *http.Request) {
	season := intQueryParam(r, "season", 0)
	entries, err := h.rosterService.ListPlayerSeason(r.Context(), chi.URLParam(r, "gsisID"), season)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Props handles GET /players/{gsisID}/props.
func (h *PlayerHandler) Props(w http.ResponseWriter, r *http.Request) {
	props, err := h.propService.ListPlayerProps(r.Context(), chi.URLParam(r, "gsisID"), intQueryParam(r, "limit", 100))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"props": props}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
