package handlers

import (
	"net/http"

	"github.com/Dosada05/league-system/fixtures"
	"github.com/Dosada05/league-system/services"
)

type FixtureHandler struct {
	fixtureService services.FixtureService
}

func NewFixtureHandler(fixtureService services.FixtureService) *FixtureHandler {
	return &FixtureHandler{fixtureService: fixtureService}
}

// GenerateFixtureHandler пересобирает календарь соревнования по
// присланной конфигурации окна. Прежний календарь заменяется целиком.
func (h *FixtureHandler) GenerateFixtureHandler(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var cfg fixtures.ScheduleConfig
	if err := readJSON(w, r, &cfg); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.fixtureService.GenerateFixture(r.Context(), competitionID, cfg)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"fixture": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *FixtureHandler) GetFixtureHandler(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.fixtureService.GetFixture(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"fixture": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
