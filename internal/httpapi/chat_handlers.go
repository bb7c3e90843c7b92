package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var input struct {
		ReceiverID string `json:"receiver_id"`
		Content    string `json:"content"`
	}
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	msg, err := s.chat.SendMessage(r.Context(), userID, input.ReceiverID, input.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	conversations, err := s.chat.GetConversations(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conversations)
}

func (s *Server) handleThread(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	skip, limit := pagination(r, 50)
	messages, err := s.chat.GetThread(r.Context(), userID, mux.Vars(r)["user_id"], skip, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}
