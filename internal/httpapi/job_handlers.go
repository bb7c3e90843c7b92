package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"trumpet/internal/job"
)

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var input job.CreateJobInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.jobs.CreateJob(r.Context(), userID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	skip, limit := pagination(r, 20)
	jobs, err := s.jobs.ListJobs(r.Context(), job.JobFilter{
		Location:   r.URL.Query().Get("location"),
		Type:       r.URL.Query().Get("type"),
		Occupation: r.URL.Query().Get("occupation"),
		Skip:       skip,
		Limit:      limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	resp, err := s.jobs.GetJob(r.Context(), mux.Vars(r)["job_id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApplyToJob(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	var input job.ApplyInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}

	app, err := s.jobs.Apply(r.Context(), mux.Vars(r)["job_id"], userID, input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := mustUserID(w, r)
	if !ok {
		return
	}
	apps, err := s.jobs.ListApplications(r.Context(), mux.Vars(r)["job_id"], userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apps)
}
