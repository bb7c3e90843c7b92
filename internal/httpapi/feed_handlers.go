package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"trumpet/internal/feed"
)

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var input struct {
		Content  string  `json:"content"`
		ImageURL *string `json:"image_url,omitempty"`
	}
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	post, err := s.feed.CreatePost(r.Context(), userID, input.Content, input.ImageURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r, 20)
	posts, err := s.feed.ListPosts(r.Context(), feed.PostFilter{
		Occupation: r.URL.Query().Get("occupation"),
		Location:   r.URL.Query().Get("location"),
		Skip:       skip,
		Limit:      limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.feed.GetPost(r.Context(), mux.Vars(r)["post_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	result, err := s.feed.ToggleLike(r.Context(), mux.Vars(r)["post_id"], userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var input struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	comment, err := s.feed.AddComment(r.Context(), mux.Vars(r)["post_id"], userID, input.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.feed.ListComments(r.Context(), mux.Vars(r)["post_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}
