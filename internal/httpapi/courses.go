package httpapi

import (
	"net/http"
	"sort"

	"github.com/poliexam/paperforge/internal/blueprint"
	"github.com/poliexam/paperforge/internal/course"
	"github.com/poliexam/paperforge/internal/paper"
	"github.com/poliexam/paperforge/internal/taxonomy"
)

func (s *Server) mountCourses(mux *http.ServeMux) {
	mountResource(mux, "courses", s.reg.Courses, resourceHooks[course.Course]{
		// MQF mappings can only reference levels the course's policies
		// allow, and level keys must belong to their row's domain.
		beforeSave: func(c *course.Course) error {
			if err := blueprint.Validate(c.Blueprint); err != nil {
				return err
			}
			c.CapMQFMappings()
			return nil
		},
	})

	mux.HandleFunc("GET /api/courses/{id}/blueprint/spans", s.withCourseDomain(s.handleSpans))
	mux.HandleFunc("GET /api/courses/{id}/blueprint/duplicates", s.withCourseDomain(s.handleDuplicates))
	mux.HandleFunc("GET /api/courses/{id}/blueprint/totals", s.withCourseDomain(s.handleTotals))
	mux.HandleFunc("GET /api/courses/{id}/blueprint/issues", s.handleIssues)
	mux.HandleFunc("GET /api/courses/{id}/slots", s.handleSlots)
	s.mountRows(mux)
}

// withCourseDomain loads the course and parses the required domain query
// parameter before dispatching to the table handlers.
func (s *Server) withCourseDomain(h func(http.ResponseWriter, *http.Request, course.Course, taxonomy.Domain)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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
		h(w, r, c, d)
	}
}

func (s *Server) handleSpans(w http.ResponseWriter, r *http.Request, c course.Course, d taxonomy.Domain) {
	writeJSON(w, http.StatusOK, blueprint.Spans(c.Blueprint, d))
}

func (s *Server) handleDuplicates(w http.ResponseWriter, r *http.Request, c course.Course, d taxonomy.Domain) {
	flagged := blueprint.DuplicateFlags(c.Blueprint, d)
	cells := make([]blueprint.CellRef, 0, len(flagged))
	for ref := range flagged {
		cells = append(cells, ref)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].RowID != cells[j].RowID {
			return cells[i].RowID < cells[j].RowID
		}
		return cells[i].Level < cells[j].Level
	})
	writeJSON(w, http.StatusOK, cells)
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request, c course.Course, d taxonomy.Domain) {
	writeJSON(w, http.StatusOK, blueprint.Totals(c.Blueprint, d))
}

func (s *Server) handleIssues(w http.ResponseWriter, r *http.Request) {
	c, err := s.reg.Courses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	issues := c.ValidateBlueprint()
	if issues == nil {
		issues = []course.Issue{}
	}
	writeJSON(w, http.StatusOK, issues)
}

func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	c, err := s.reg.Courses.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	task := r.URL.Query().Get("task")
	if task == "" {
		writeError(w, http.StatusBadRequest, "task parameter is required")
		return
	}
	slots := paper.Slots(c.Blueprint, task)
	if slots == nil {
		slots = []paper.Slot{}
	}
	writeJSON(w, http.StatusOK, slots)
}
