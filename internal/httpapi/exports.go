package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/poliexam/paperforge/internal/export"
	"github.com/poliexam/paperforge/internal/taxonomy"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) mountExport(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/export/blueprint/{courseID}", s.handleExportBlueprint)
	mux.HandleFunc("GET /api/export/paper/{paperID}", s.handleExportPaper)
}

func (s *Server) handleExportBlueprint(w http.ResponseWriter, r *http.Request) {
	c, err := s.reg.Courses.Get(r.Context(), r.PathValue("courseID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	d, err := taxonomy.ParseDomain(r.URL.Query().Get("domain"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f, err := export.Blueprint(c, d, s.catalog)
	if err != nil {
		slog.Error("blueprint export failed", "course", c.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "export failure")
		return
	}
	defer f.Close()

	sendWorkbook(w, f, fmt.Sprintf("cist-%s-%s.xlsx", c.Code, d))
}

func (s *Server) handleExportPaper(w http.ResponseWriter, r *http.Request) {
	p, err := s.reg.Papers.Get(r.Context(), r.PathValue("paperID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	f, err := export.Paper(p)
	if err != nil {
		slog.Error("paper export failed", "paper", p.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "export failure")
		return
	}
	defer f.Close()

	sendWorkbook(w, f, fmt.Sprintf("paper-%s.xlsx", p.ID))
}

func sendWorkbook(w http.ResponseWriter, f *excelize.File, name string) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := f.WriteTo(w); err != nil {
		slog.Error("writing workbook", "file", name, "error", err)
	}
}
