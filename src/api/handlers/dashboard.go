package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dashboard/src/utils"
)

// GetDashboard runs the pipeline for the requested selection and responds
// with the observation rows and chart specifications. A fetch failure comes
// back as an explicit no-data payload, not an error status.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	selection, err := h.parseSelection(r)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	response, err := h.Controller.GetDashboard(ctx, selection)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, response, http.StatusOK)
}

// GetDashboardPage renders the charts as an HTML page.
func (h *Handler) GetDashboardPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	selection, err := h.parseSelection(r)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Controller.RenderDashboardHTML(ctx, selection, w); err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}
}

// GetDashboardFile is the HTTP handler for the download button: the full
// table as CSV, or as an XLSX workbook with chart sheets when
// format=XLSX.
func (h *Handler) GetDashboardFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	selection, err := h.parseSelection(r)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "XLSX" {
		xlsxFile, fileName, err := h.Controller.GetDashboardXLSX(ctx, selection)
		if err != nil {
			h.HandleErrors(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))

		if err = xlsxFile.Write(w); err != nil {
			h.HandleErrors(w, err)
			return
		}
	} else {
		csvData, fileName, err := h.Controller.GetDashboardCSV(ctx, selection)
		if err != nil {
			h.HandleErrors(w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(csvData)))

		if _, err = w.Write(csvData); err != nil {
			h.HandleErrors(w, err)
			return
		}
	}
}
