package main

import (
	"net/http"
	"time"

	"github.com/osbp/contract_insights/internal/pipeline/utils"
	"github.com/osbp/contract_insights/internal/response"
	"github.com/osbp/contract_insights/internal/store"
)

// contractActionView adds months_remaining, recomputed from expiration_date
// at read time so stale snapshots never leave the API.
type contractActionView struct {
	store.ContractAction
	MonthsRemaining *int `json:"months_remaining"`
}

type GetContractActionsResponse = response.APIResponse[[]contractActionView]

// @Summary		Get contract actions
// @Description	Get canonical contract actions, optionally filtered by source, size status, NAICS codes, or run.
// @Tags			Contracts
// @Produce		json
// @Param			source		query		string						false	"Source extract: acc_ri or army"
// @Param			size_status	query		string						false	"Size status: SB or OTSB"
// @Param			naics		query		string						false	"Comma-separated 6-digit NAICS codes"
// @Param			run_id		query		int							false	"Restrict to one pipeline run"
// @Param			limit		query		int							false	"Limit the number of results"	default(100)
// @Success		200			{object}	GetContractActionsResponse	"Successfully retrieved contract actions"
// @Failure		500			{object}	response.ErrorResponse		"Failed to get contract actions"
// @Router			/contracts [get]
func (app *application) handleGetContractActions(w http.ResponseWriter, r *http.Request) {
	filter := store.ContractFilter{
		Source:     r.URL.Query().Get("source"),
		SizeStatus: r.URL.Query().Get("size_status"),
		NAICSCodes: queryList(r, "naics"),
		RunID:      int64(queryInt(r, "run_id", 0)),
		Limit:      queryInt(r, "limit", 100),
	}

	ctx := r.Context()
	actions, err := app.store.Contracts.GetContractActions(ctx, filter)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get contract actions: "+err.Error())
		return
	}

	now := time.Now()
	views := make([]contractActionView, 0, len(actions))
	for _, a := range actions {
		view := contractActionView{ContractAction: a}
		if a.ExpirationDate != nil {
			if months, ok := utils.MonthsRemaining(*a.ExpirationDate, now); ok {
				view.MonthsRemaining = &months
			}
		}
		views = append(views, view)
	}

	response := &GetContractActionsResponse{
		Success: true,
		Data:    views,
		Count:   len(views),
		Message: "Successfully retrieved contract actions",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
