package http

import (
	"net/http"
)

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := req.toCore(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	b, err = s.svcs.Budgets.Create(r.Context(), b)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	s.invalidateReports(userID)
	respondJSON(w, http.StatusCreated, toBudgetResponse(b))
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	budgets, err := s.svcs.Budgets.List(r.Context(), userID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toBudgetResponses(budgets))
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	b, err := s.svcs.Budgets.Get(r.Context(), pathID(r), userID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := req.toCore(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	b.ID = pathID(r)

	b, err = s.svcs.Budgets.Update(r.Context(), b)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	s.invalidateReports(userID)
	respondJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	if err := s.svcs.Budgets.Delete(r.Context(), pathID(r), userID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	s.invalidateReports(userID)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
