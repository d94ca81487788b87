package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/poliexam/paperforge/internal/blueprint"
	"github.com/poliexam/paperforge/internal/course"
	"github.com/poliexam/paperforge/internal/taxonomy"
)

func (s *Server) mountRows(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/courses/{id}/blueprint/rows", s.handleAddRow)
	mux.HandleFunc("PATCH /api/courses/{id}/blueprint/rows/{rowID}", s.handlePatchRow)
	mux.HandleFunc("DELETE /api/courses/{id}/blueprint/rows/{rowID}", s.handleRemoveRow)
}

// handleAddRow appends a fresh zero-initialized row for the requested domain
// and returns the saved course, so the client learns the row's assigned ID.
func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	c, err := s.reg.Courses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	d, err := taxonomy.ParseDomain(r.URL.Query().Get("domain"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c.Blueprint = blueprint.AddRow(c.Blueprint, d)
	s.saveCourse(w, r, c)
}

// rowPatchRequest is the wire shape of a partial row edit. Toggle fields
// flip membership in the named set instead of replacing the whole list.
type rowPatchRequest struct {
	Task           *string                        `json:"task"`
	TopicCode      *string                        `json:"topicCode"`
	CLOs           []string                       `json:"clos"`
	Levels         map[string]blueprint.LevelCell `json:"levels"`
	Construct      *string                        `json:"construct"`
	ItemTypes      []string                       `json:"itemTypes"`
	ToggleCLO      *string                        `json:"toggleClo"`
	ToggleItemType *string                        `json:"toggleItemType"`
}

func (s *Server) handlePatchRow(w http.ResponseWriter, r *http.Request) {
	var req rowPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	c, err := s.reg.Courses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	rowID := r.PathValue("rowID")

	patch := blueprint.Patch{
		Task:      req.Task,
		TopicCode: req.TopicCode,
		CLOs:      req.CLOs,
		Levels:    req.Levels,
		Construct: req.Construct,
		ItemTypes: req.ItemTypes,
	}
	if req.ToggleCLO != nil || req.ToggleItemType != nil {
		row, ok := rowByID(c.Blueprint, rowID)
		if !ok {
			writeError(w, http.StatusNotFound, "no row "+rowID)
			return
		}
		if req.ToggleCLO != nil {
			patch.CLOs = blueprint.Toggle(row.CLOs, *req.ToggleCLO)
		}
		if req.ToggleItemType != nil {
			patch.ItemTypes = blueprint.Toggle(row.ItemTypes, *req.ToggleItemType)
		}
	}

	// UpdateRow edits in place; work on a copy so a stored course loaded
	// from a shared store never mutates before Save.
	updated, err := blueprint.UpdateRow(blueprint.CloneRows(c.Blueprint), rowID, patch)
	if err != nil {
		if errors.Is(err, blueprint.ErrRowNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.Blueprint = updated
	s.saveCourse(w, r, c)
}

// handleRemoveRow deletes a row; removing an unknown ID is a no-op, matching
// the in-memory operation.
func (s *Server) handleRemoveRow(w http.ResponseWriter, r *http.Request) {
	c, err := s.reg.Courses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	c.Blueprint = blueprint.RemoveRow(c.Blueprint, r.PathValue("rowID"))
	if _, err := s.reg.Courses.Save(r.Context(), c); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// saveCourse runs the same checks the whole-course save path applies, then
// persists and returns the course.
func (s *Server) saveCourse(w http.ResponseWriter, r *http.Request, c course.Course) {
	if err := blueprint.Validate(c.Blueprint); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	saved, err := s.reg.Courses.Save(r.Context(), c)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func rowByID(rows []blueprint.Row, id string) (blueprint.Row, bool) {
	for _, row := range rows {
		if row.ID == id {
			return row, true
		}
	}
	return blueprint.Row{}, false
}
