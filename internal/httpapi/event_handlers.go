package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"trumpet/internal/event"
)

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var input event.CreateEventInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.events.CreateEvent(r.Context(), userID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r, 20)
	events, err := s.events.ListEvents(r.Context(), event.EventFilter{
		Location:   r.URL.Query().Get("location"),
		Occupation: r.URL.Query().Get("occupation"),
		Skip:       skip,
		Limit:      limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	resp, err := s.events.GetEvent(r.Context(), mux.Vars(r)["event_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAttendEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var input struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	attendee, err := s.events.Attend(r.Context(), mux.Vars(r)["event_id"], userID, input.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attendee)
}
