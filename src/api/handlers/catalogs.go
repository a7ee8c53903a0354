package handlers

import (
	"net/http"
)

// GetAllIndicators lists the indicator catalog for the selection surface.
func (h *Handler) GetAllIndicators(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.Controller.GetIndicators(), http.StatusOK)
}

// GetAllCountries lists the country catalog for the selection surface.
func (h *Handler) GetAllCountries(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.Controller.GetCountries(), http.StatusOK)
}
