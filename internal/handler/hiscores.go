package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/osse101/MineIdler_Go/internal/domain"
	"github.com/osse101/MineIdler_Go/internal/hiscores"
)

// HiscoresResponse lists the top users by inventory value
type HiscoresResponse struct {
	Entries []domain.HiscoreEntry `json:"entries"`
}

// HandleGetHiscores returns the leaderboard. The limit is clamped by the service.
// @Summary Get hiscores
// @Description Returns the users with the most valuable inventories
// @Tags hiscores
// @Produce json
// @Param limit query int false "Number of entries"
// @Success 200 {object} HiscoresResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/hiscores [get]
func HandleGetHiscores(svc hiscores.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get(QueryParamLimit); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, QueryParamLimit))
				return
			}
			limit = parsed
		}

		entries, err := svc.Top(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, OpGetHiscores, err)
			return
		}
		if entries == nil {
			entries = []domain.HiscoreEntry{}
		}
		respondJSON(w, http.StatusOK, HiscoresResponse{Entries: entries})
	}
}
