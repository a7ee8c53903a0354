package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"dashboard/src/api/controllers"
	"dashboard/src/catalog"
	"dashboard/src/clients/worldbank"
	"dashboard/src/config"
	"dashboard/src/schemas"
	"dashboard/src/services"
	"dashboard/src/utils"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	Controller controllers.IController
	Logger     *logrus.Logger
	Validate   *validator.Validate
}

func NewHandler(cfg *config.Config, logger *logrus.Logger) (*Handler, error) {
	worldBankClient := worldbank.NewClient(cfg)
	controller := controllers.NewController(
		services.NewIndicatorService(worldBankClient),
		services.NewChartService(),
		services.NewExportService(),
	)
	return &Handler{
		Controller: controller,
		Logger:     logger,
		Validate:   validator.New(),
	}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors maps pipeline errors onto HTTP responses. Resolver misses are
// trust-boundary violations from a constrained UI, reported as 422 rather
// than silently corrupting a request.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	if errors.Is(err, utils.ErrUnknownIndicator) || errors.Is(err, utils.ErrUnknownCountry) {
		utils.WriteError(w, utils.UnprocessableEntity(err.Error()))
		return
	}
	utils.WriteError(w, err)
}

// parseSelection reads the selection query parameters, falling back to the
// catalog defaults for anything absent, and validates the result before it
// crosses into the pipeline.
func (h *Handler) parseSelection(r *http.Request) (schemas.Selection, error) {
	selection := schemas.Selection{
		Indicator: catalog.DefaultIndicators.Default().Name,
		StartYear: catalog.DefaultYears.Start,
		EndYear:   catalog.DefaultYears.End,
	}

	if indicator := r.URL.Query().Get("indicator"); indicator != "" {
		selection.Indicator = indicator
	}
	if countriesStr := r.URL.Query().Get("countries"); countriesStr != "" {
		for _, name := range strings.Split(countriesStr, ",") {
			if name = strings.TrimSpace(name); name != "" {
				selection.Countries = append(selection.Countries, name)
			}
		}
	}

	var err error
	if startStr := r.URL.Query().Get("startYear"); startStr != "" {
		if selection.StartYear, err = strconv.Atoi(startStr); err != nil {
			return selection, utils.UnprocessableEntity("invalid startYear: " + startStr)
		}
	}
	if endStr := r.URL.Query().Get("endYear"); endStr != "" {
		if selection.EndYear, err = strconv.Atoi(endStr); err != nil {
			return selection, utils.UnprocessableEntity("invalid endYear: " + endStr)
		}
	}

	if err := h.Validate.Struct(selection); err != nil {
		return selection, utils.UnprocessableEntity(err.Error())
	}
	return selection, nil
}
