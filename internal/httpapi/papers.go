package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/poliexam/paperforge/internal/paper"
)

func (s *Server) mountPapers(mux *http.ServeMux) {
	mountResource(mux, "papers", s.reg.Papers, resourceHooks[paper.Paper]{
		beforeSave: func(p *paper.Paper) error {
			if p.Status == "" {
				p.Status = paper.StatusDraft
			}
			if len(p.Footer) == 0 {
				p.Footer = paper.DefaultFooter()
			}
			return nil
		},
	})

	mux.HandleFunc("POST /api/papers/{id}/bind", s.handleBind)
	mux.HandleFunc("POST /api/papers/{id}/unbind", s.handleUnbind)
	mux.HandleFunc("GET /api/papers/{id}/readiness", s.handleReadiness)
	mux.HandleFunc("GET /api/papers/{id}/scheme", s.handleScheme)
}

type bindRequest struct {
	TargetNumber string `json:"targetNumber"`
	QuestionID   string `json:"questionId"`
}

// handleBind copies a bank question into the paper slot named by the
// request, then persists the paper.
func (s *Server) handleBind(w http.ResponseWriter, r *http.Request) {
	var req bindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	p, slot, ok := s.paperSlot(w, r, req.TargetNumber)
	if !ok {
		return
	}
	q, err := s.reg.Questions.Get(r.Context(), req.QuestionID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	paper.Bind(&p, slot, q)
	saved, err := s.reg.Papers.Save(r.Context(), p)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleUnbind(w http.ResponseWriter, r *http.Request) {
	var req bindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	p, slot, ok := s.paperSlot(w, r, req.TargetNumber)
	if !ok {
		return
	}
	paper.Unbind(&p, slot)
	saved, err := s.reg.Papers.Save(r.Context(), p)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// paperSlot loads the paper and resolves target against its course's slot
// list. It writes the error response itself when resolution fails.
func (s *Server) paperSlot(w http.ResponseWriter, r *http.Request, target string) (paper.Paper, paper.Slot, bool) {
	p, err := s.reg.Papers.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return paper.Paper{}, paper.Slot{}, false
	}
	slots, err := s.slotsFor(r, p)
	if err != nil {
		writeStoreError(w, err)
		return paper.Paper{}, paper.Slot{}, false
	}
	for _, slot := range slots {
		if slot.TargetNumber == target {
			return p, slot, true
		}
	}
	writeError(w, http.StatusBadRequest, "no slot with number "+target)
	return paper.Paper{}, paper.Slot{}, false
}

func (s *Server) slotsFor(r *http.Request, p paper.Paper) ([]paper.Slot, error) {
	c, err := s.reg.Courses.Get(r.Context(), p.CourseID)
	if err != nil {
		return nil, err
	}
	return paper.Slots(c.Blueprint, p.Task), nil
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	p, err := s.reg.Papers.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	slots, err := s.slotsFor(r, p)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paper.CheckReadiness(&p, slots))
}

// handleScheme derives the answer scheme for every question on the paper.
func (s *Server) handleScheme(w http.ResponseWriter, r *http.Request) {
	p, err := s.reg.Papers.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	schemes := make([]paper.Scheme, 0, len(p.Questions))
	for _, q := range p.Questions {
		schemes = append(schemes, paper.ParseScheme(q))
	}
	writeJSON(w, http.StatusOK, schemes)
}
