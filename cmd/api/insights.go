package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/osbp/contract_insights/internal/pipeline/insight"
	"github.com/osbp/contract_insights/internal/response"
	"github.com/osbp/contract_insights/internal/store"
)

type GetInsightListResponse = response.APIResponse[[]store.InsightEntry]

// @Summary		Get insight list
// @Description	Get the latest run's insight list for one named rule, in months-remaining order.
// @Tags			Insights
// @Produce		json
// @Param			rule	query		string					true	"Rule name"
// @Param			limit	query		int						false	"Limit the number of results"	default(100)
// @Success		200		{object}	GetInsightListResponse	"Successfully retrieved insight list"
// @Failure		400		{object}	response.ErrorResponse	"Unknown insight rule"
// @Failure		500		{object}	response.ErrorResponse	"Failed to get insight list"
// @Router			/insights/{rule} [get]
func (app *application) handleGetInsightList(w http.ResponseWriter, r *http.Request) {
	rule := chi.URLParam(r, "rule")

	known := false
	for _, name := range insight.Names() {
		if name == rule {
			known = true
			break
		}
	}
	if !known {
		writeJSONError(w, http.StatusBadRequest, "unknown insight rule: "+rule)
		return
	}

	ctx := r.Context()
	entries, err := app.store.Insights.GetInsightEntries(ctx, rule, queryInt(r, "limit", 100))
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get insight list: "+err.Error())
		return
	}

	response := &GetInsightListResponse{
		Success: true,
		Data:    entries,
		Count:   len(entries),
		Message: "Successfully retrieved insight list",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
