package http

import (
	"net/http"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := req.toCore(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err = s.svcs.Transactions.Create(r.Context(), t)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	s.invalidateReports(userID)
	respondJSON(w, http.StatusCreated, toTransactionResponse(t))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	txs, err := s.svcs.Transactions.List(r.Context(), userID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTransactionResponses(txs))
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	t, err := s.svcs.Transactions.Get(r.Context(), pathID(r), userID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toTransactionResponse(t))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := req.toCore(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	t.ID = pathID(r)

	t, err = s.svcs.Transactions.Update(r.Context(), t)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	s.invalidateReports(userID)
	respondJSON(w, http.StatusOK, toTransactionResponse(t))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	if err := s.svcs.Transactions.Delete(r.Context(), pathID(r), userID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	s.invalidateReports(userID)
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
