package handlers

import (
	"net/http"

	"github.com/Dosada05/league-system/services"
)

type GroupHandler struct {
	groupService services.GroupService
}

func NewGroupHandler(groupService services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// DrawGroupsHandler проводит жеребьёвку нераспределённых заявок по
// группам соревнования и возвращает полный состав групп.
func (h *GroupHandler) DrawGroupsHandler(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.groupService.DrawGroups(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"groups": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
