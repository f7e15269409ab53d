package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gridironlabs/gridiron-system/models"
	"github.com/gridironlabs/gridiron-system/services"
)

type TeamHandler struct {
	teamService   services.TeamService
	rosterService services.RosterService
}

func NewTeamHandler(teamService services.TeamService, rosterService services.RosterService) *TeamHandler {
	return &TeamHandler{teamService: teamService, rosterService: rosterService}
}

// List handles GET /teams.
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Get handles GET /teams/{abbr}.
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamService.GetTeam(r.Context(), chi.URLParam(r, "abbr"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Roster handles GET /teams/{abbr}/roster. Without season and week query
// parameters it returns the current players; with them it returns the
// weekly roster entries.
func (h *TeamHandler) Roster(w http.ResponseWriter, r *http.Request) {
	abbr := chi.URLParam(r, "abbr")
	season := intQueryParam(r, "season", 0)
	week := intQueryParam(r, "week", 0)

	if season == 0 && week == 0 {
		team, err := h.teamService.GetTeamRoster(r.Context(), abbr)
		if err != nil {
			mapServiceErrorToHTTP(w, r, err)
			return
		}
		if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	entries, err := h.rosterService.ListTeamWeek(r.Context(), abbr, season, week)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Upsert handles PUT /admin/teams.
func (h *TeamHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var team models.Team
	if err := readJSON(w, r, &team); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.teamService.UpsertTeam(r.Context(), &team); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadLogo handles POST /admin/teams/{abbr}/logo.
func (h *TeamHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("Content-Type header is required"))
		return
	}

	team, err := h.teamService.UploadLogo(r.Context(), chi.URLParam(r, "abbr"), contentType, r.Body)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpsertRosterEntry handles PUT /admin/rosters.
func (h *TeamHandler) UpsertRosterEntry(w http.ResponseWriter, r *http.Request) {
	var entry models.PlayerWeekRoster
	if err := readJSON(w, r, &entry); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.rosterService.UpsertWeekEntry(r.Context(), &entry); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"roster_entry": entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
