package httpapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"trumpet/internal/user"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r, 20)
	filter := user.ListFilter{
		Occupation: r.URL.Query().Get("occupation"),
		Location:   r.URL.Query().Get("location"),
		Skip:       skip,
		Limit:      limit,
	}
	if interests := r.URL.Query().Get("interests"); interests != "" {
		filter.Interests = strings.Split(interests, ",")
	}

	users, err := s.users.ListUsers(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.GetProfile(r.Context(), mux.Vars(r)["user_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r, 20)
	users, err := s.users.SearchUsers(r.Context(), mux.Vars(r)["query"], skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleRequestConnection(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var input struct {
		ReceiverID string `json:"receiver_id"`
	}
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	conn, err := s.users.RequestConnection(r.Context(), userID, input.ReceiverID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, conn)
}

func (s *Server) handleAcceptConnection(w http.ResponseWriter, r *http.Request) {
	s.respondToConnection(w, r, true)
}

func (s *Server) handleRejectConnection(w http.ResponseWriter, r *http.Request) {
	s.respondToConnection(w, r, false)
}

func (s *Server) respondToConnection(w http.ResponseWriter, r *http.Request, accept bool) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	conn, err := s.users.RespondToConnection(r.Context(), userID, mux.Vars(r)["id"], accept)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conn)
}

func (s *Server) handleListConnections(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	conns, err := s.users.ListConnections(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conns)
}
