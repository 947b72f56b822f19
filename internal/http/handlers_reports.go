package http

import (
	"net/http"

	"fintrack/internal/core"
)

func (s *Server) handleTransactionReport(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	key := cacheKey(userID)

	if cached, ok := s.txReportCache.Get(key); ok {
		respondJSON(w, http.StatusOK, toTransactionReportResponse(cached))
		return
	}

	report, err := s.svcs.Reports.TransactionReport(r.Context(), userID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.txReportCache.Set(key, report)
	respondJSON(w, http.StatusOK, toTransactionReportResponse(report))
}

func (s *Server) handleBudgetReport(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())
	key := cacheKey(userID)

	if cached, ok := s.budgetReportCache.Get(key); ok {
		respondJSON(w, http.StatusOK, toBudgetReportResponse(cached))
		return
	}

	report, err := s.svcs.Reports.BudgetReport(r.Context(), userID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.budgetReportCache.Set(key, report)
	respondJSON(w, http.StatusOK, toBudgetReportResponse(report))
}

// handlePlanner builds a 50/30/20 recommendation from the income query
// parameter, a decimal amount like the request bodies carry.
func (s *Server) handlePlanner(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	income, err := core.ParseMoney(r.URL.Query().Get("income"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid income, expected a positive decimal amount")
		return
	}

	plan, err := s.svcs.Reports.Plan(r.Context(), userID, income)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toPlanResponse(plan))
}
