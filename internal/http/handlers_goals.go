package http

import (
	"net/http"
)

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var req goalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	g, err := req.toCore(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err = s.svcs.Goals.Create(r.Context(), g)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toGoalResponse(g))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	goals, err := s.svcs.Goals.List(r.Context(), userID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toGoalResponses(goals))
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	g, err := s.svcs.Goals.Get(r.Context(), pathID(r), userID)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	var req goalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	g, err := req.toCore(userID)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	g.ID = pathID(r)

	g, err = s.svcs.Goals.Update(r.Context(), g)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toGoalResponse(g))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r.Context())

	if err := s.svcs.Goals.Delete(r.Context(), pathID(r), userID); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
