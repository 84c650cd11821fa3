package web

import (
	"net/http"

	"github.com/JonMunkholm/runsheet/internal/core"
	"github.com/JonMunkholm/runsheet/internal/timetable"
)

type createProjectResponse struct {
	ID      string            `json:"id"`
	Project timetable.Project `json:"project"`
}

// handleCreateProject creates a project from a NewProjectRequest body.
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req core.NewProjectRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	id, p, err := s.service.CreateProject(ctx, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/projects/"+id)
	writeJSON(w, http.StatusCreated, createProjectResponse{ID: id, Project: p})
}

// handleListProjects returns project summaries, most recent first.
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	list, err := s.service.ListProjects(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// handleGetProject returns the stored project document.
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.service.Project(r.Context(), projectID(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleReplaceProject overwrites a project with a saved document.
func (s *Server) handleReplaceProject(w http.ResponseWriter, r *http.Request) {
	var p timetable.Project
	if err := decodeJSON(w, r, &p, false); err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	saved, err := s.service.ReplaceProject(ctx, projectID(r), p)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// handleDeleteProject removes a project.
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	ctx := WithRequestMetadata(r.Context(), r)
	if err := s.service.DeleteProject(ctx, projectID(r)); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
