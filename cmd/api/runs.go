package main

import (
	"net/http"

	"github.com/osbp/contract_insights/internal/response"
	"github.com/osbp/contract_insights/internal/store"
)

type GetRunHistoryResponse = response.APIResponse[[]store.PipelineRun]

// @Summary		Get run history
// @Description	Get the latest pipeline runs, most recent first.
// @Tags			Runs
// @Produce		json
// @Param			limit	query		int						false	"Limit the number of results"	default(10)
// @Success		200		{object}	GetRunHistoryResponse	"Successfully retrieved run history"
// @Failure		500		{object}	response.ErrorResponse	"Failed to get run history"
// @Router			/runs/history [get]
func (app *application) handleGetRunHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	runs, err := app.store.Runs.GetLatest(ctx, queryInt(r, "limit", 10))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get run history: "+err.Error())
		return
	}

	response := &GetRunHistoryResponse{
		Success: true,
		Data:    runs,
		Count:   len(runs),
		Message: "Successfully retrieved run history",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
