package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"fuelstation-service/internal/domain/repository"
	"fuelstation-service/pkg/logger"
	"fuelstation-service/pkg/metrics"
	"fuelstation-service/pkg/validation"

	"github.com/gorilla/mux"
)

// FuelStationHandler binds the HTTP surface onto the fuel station
// repository.
type FuelStationHandler struct {
	repo       repository.FuelStationRepository
	logger     logger.Logger
	metrics    *metrics.Metrics
	production bool
}

// NewFuelStationHandler creates a new fuel station handler.
func NewFuelStationHandler(repo repository.FuelStationRepository, log logger.Logger, m *metrics.Metrics, production bool) *FuelStationHandler {
	return &FuelStationHandler{
		repo:       repo,
		logger:     log,
		metrics:    m,
		production: production,
	}
}

// Register mounts the fuel station routes on the /fuel-stations
// subrouter.
func (h *FuelStationHandler) Register(api *mux.Router) {
	api.HandleFunc("", h.List).Methods(http.MethodGet)
	api.HandleFunc("", h.Create).Methods(http.MethodPost)
	api.HandleFunc("/{fuelStationId}", h.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/{fuelStationId}", h.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/{fuelStationId}/name", h.UpdateName).Methods(http.MethodPatch)
	api.HandleFunc("/{fuelStationId}/pump-price", h.UpdatePumpPrices).Methods(http.MethodPatch)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeProblem(w http.ResponseWriter, problem *validation.Problem) {
	writeJSON(w, problem.Status, problem)
}

func writeNotFound(w http.ResponseWriter, id string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, "Fuel station with ID %s not found.", id)
}

// internalError maps unexpected failures to a 500. The raw error is
// only disclosed outside production.
func (h *FuelStationHandler) internalError(w http.ResponseWriter, operation string, err error) {
	h.logger.Error("Store operation failed", "operation", operation, "error", err)
	h.metrics.StoreErrors.WithLabelValues(operation).Inc()

	if h.production {
		writeJSON(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	writeJSON(w, http.StatusInternalServerError, err.Error())
}

// stationID validates the path parameter shared by the parameterized
// routes, using the same failure shape as body validation.
func stationID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mux.Vars(r)["fuelStationId"]
	if id == "" {
		var issues validation.Issues
		issues.Add("Required", "fuelStationId")
		writeProblem(w, validation.NewProblem(issues))
		return "", false
	}
	return id, true
}

// List handles GET /fuel-stations.
func (h *FuelStationHandler) List(w http.ResponseWriter, r *http.Request) {
	stations, err := h.repo.List(r.Context())
	if err != nil {
		h.internalError(w, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, stations)
}

// Create handles POST /fuel-stations.
func (h *FuelStationHandler) Create(w http.ResponseWriter, r *http.Request) {
	station, problem := parseCreateStation(r.Body)
	if problem != nil {
		writeProblem(w, problem)
		return
	}

	err := h.repo.Create(r.Context(), station)
	if errors.Is(err, repository.ErrDuplicateID) {
		writeJSON(w, http.StatusConflict, &validation.Problem{
			Type:   "DUPLICATE_ID",
			Status: http.StatusConflict,
			Title:  "Fuel station already exists.",
			Detail: fmt.Sprintf("A fuel station with ID %s already exists.", station.ID),
			Issues: []validation.Issue{},
		})
		return
	}
	if err != nil {
		h.internalError(w, "create", err)
		return
	}

	h.logger.Info("Fuel station created", "id", station.ID)
	writeJSON(w, http.StatusCreated, station)
}

// GetByID handles GET /fuel-stations/{fuelStationId}.
func (h *FuelStationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := stationID(w, r)
	if !ok {
		return
	}

	station, err := h.repo.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeNotFound(w, id)
		return
	}
	if err != nil {
		h.internalError(w, "get", err)
		return
	}
	writeJSON(w, http.StatusOK, station)
}

// Delete handles DELETE /fuel-stations/{fuelStationId}. Deleting an
// absent station still answers 204.
func (h *FuelStationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := stationID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.internalError(w, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateName handles PATCH /fuel-stations/{fuelStationId}/name.
func (h *FuelStationHandler) UpdateName(w http.ResponseWriter, r *http.Request) {
	id, ok := stationID(w, r)
	if !ok {
		return
	}

	name, problem := parseUpdateName(r.Body)
	if problem != nil {
		writeProblem(w, problem)
		return
	}

	station, err := h.repo.UpdateName(r.Context(), id, name)
	if errors.Is(err, repository.ErrNotFound) {
		writeNotFound(w, id)
		return
	}
	if err != nil {
		h.internalError(w, "update_name", err)
		return
	}
	writeJSON(w, http.StatusOK, station)
}

// UpdatePumpPrices handles PATCH /fuel-stations/{fuelStationId}/pump-price.
func (h *FuelStationHandler) UpdatePumpPrices(w http.ResponseWriter, r *http.Request) {
	id, ok := stationID(w, r)
	if !ok {
		return
	}

	updates, problem := parseUpdatePumpPrices(r.Body)
	if problem != nil {
		writeProblem(w, problem)
		return
	}

	station, err := h.repo.UpdatePumpPrices(r.Context(), id, updates)
	if errors.Is(err, repository.ErrNotFound) {
		writeNotFound(w, id)
		return
	}
	if err != nil {
		h.internalError(w, "update_pump_prices", err)
		return
	}
	writeJSON(w, http.StatusOK, station)
}
