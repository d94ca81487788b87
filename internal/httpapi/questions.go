package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/poliexam/paperforge/internal/bank"
)

const questionListKey = "paperforge:questions"

func (s *Server) mountQuestions(mux *http.ServeMux) {
	mountResource(mux, "questions", s.reg.Questions, resourceHooks[bank.Question]{
		beforeSave: func(q *bank.Question) error { q.SyncMarks(); return nil },
		afterWrite: s.invalidateQuestions,
		list:       s.listQuestions,
	})

	mux.HandleFunc("POST /api/questions/import", s.handleImport)
	mux.HandleFunc("GET /api/questions/pick", s.handlePick)
}

// listQuestions serves the bank listing from the cache when one is wired,
// falling back to the store on miss or cache failure.
func (s *Server) listQuestions(r *http.Request) ([]bank.Question, error) {
	ctx := r.Context()
	if s.cache != nil {
		var cached []bank.Question
		hit, err := s.cache.GetJSON(ctx, questionListKey, &cached)
		if err != nil {
			slog.Warn("question cache read failed", "error", err)
		} else if hit {
			return cached, nil
		}
	}

	questions, err := s.reg.Questions.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, questionListKey, questions, s.cacheTTL); err != nil {
			slog.Warn("question cache write failed", "error", err)
		}
	}
	return questions, nil
}

func (s *Server) invalidateQuestions(r *http.Request) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(r.Context(), questionListKey); err != nil {
		slog.Warn("question cache invalidation failed", "error", err)
	}
}

// handleImport validates an uploaded question batch against the bank schema
// and stores every record.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading body: "+err.Error())
		return
	}
	questions, err := bank.Import(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved := make([]bank.Question, 0, len(questions))
	for _, q := range questions {
		stored, err := s.reg.Questions.Save(r.Context(), q)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		saved = append(saved, stored)
	}
	s.invalidateQuestions(r)
	slog.Info("question batch imported", "count", len(saved))
	writeJSON(w, http.StatusOK, saved)
}

// handlePick ranks the bank against slot criteria and a free-text search.
func (s *Server) handlePick(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := bank.Criteria{
		Topic:    q.Get("topic"),
		CLO:      q.Get("clo"),
		Taxonomy: q.Get("taxonomy"),
	}
	if raw := q.Get("marks"); raw != "" {
		marks, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "marks must be an integer")
			return
		}
		criteria.Marks = marks
	}

	questions, err := s.listQuestions(r)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	ranked := bank.Rank(questions, criteria, q.Get("search"))
	if ranked == nil {
		ranked = []bank.Ranked{}
	}
	writeJSON(w, http.StatusOK, ranked)
}
