package handlers

import (
	"net/http"

	"github.com/gridironlabs/gridiron-system/services"
)

type OddsHandler struct {
	oddsService services.OddsService
	propService services.PropService
}

func NewOddsHandler(oddsService services.OddsService, propService services.PropService) *OddsHandler {
	return &OddsHandler{oddsService: oddsService, propService: propService}
}

// ListGames handles GET /games. With season and week query parameters it
// returns that slate; otherwise upcoming games.
func (h *OddsHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	season := intQueryParam(r, "season", 0)
	week := intQueryParam(r, "week", 0)

	var err error
	var games interface{}
	if season != 0 || week != 0 {
		games, err = h.oddsService.ListGamesBySeasonWeek(r.Context(), season, week)
	} else {
		games, err = h.oddsService.ListUpcomingGames(r.Context(), intQueryParam(r, "limit", 32))
	}
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"games": games}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetGame handles GET /games/{id}.
func (h *OddsHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, err := intURLParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.oddsService.GetGame(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"game": game}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GameOdds handles GET /games/{id}/odds.
func (h *OddsHandler) GameOdds(w http.ResponseWriter, r *http.Request) {
	id, err := intURLParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	odds, err := h.oddsService.ListGameOdds(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"odds": odds}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Compare handles GET /games/{id}/compare.
func (h *OddsHandler) Compare(w http.ResponseWriter, r *http.Request) {
	id, err := intURLParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	comparison, err := h.oddsService.CompareGame(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"comparison": comparison}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Movements handles GET /games/{id}/movements.
func (h *OddsHandler) Movements(w http.ResponseWriter, r *http.Request) {
	id, err := intURLParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	movements, err := h.oddsService.ListMovements(r.Context(), id, intQueryParam(r, "limit", 200))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"movements": movements}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Consensus handles GET /games/{id}/consensus.
func (h *OddsHandler) Consensus(w http.ResponseWriter, r *http.Request) {
	id, err := intURLParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	consensus, err := h.oddsService.ListConsensus(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"consensus": consensus}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GameProps handles GET /games/{id}/props.
func (h *OddsHandler) GameProps(w http.ResponseWriter, r *http.Request) {
	id, err := intURLParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	props, err := h.propService.ListGameProps(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"props": props}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListBookmakers handles GET /bookmakers.
func (h *OddsHandler) ListBookmakers(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	bookmakers, err := h.oddsService.ListBookmakers(r.Context(), activeOnly)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"bookmakers": bookmakers}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListPropTypes handles GET /props/types.
func (h *OddsHandler) ListPropTypes(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") != "false"
	types, err := h.propService.ListPropTypes(r.Context(), activeOnly)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"prop_types": types}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SyncOdds handles POST /admin/odds/sync.
func (h *OddsHandler) SyncOdds(w http.ResponseWriter, r *http.Request) {
	result, err := h.oddsService.SyncOdds(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SyncProps handles POST /admin/props/sync.
func (h *OddsHandler) SyncProps(w http.ResponseWriter, r *http.Request) {
	result, err := h.propService.SyncPlayerProps(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
