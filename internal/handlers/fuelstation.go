package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fuelease/fuelease/internal/services"
	pkghttp "github.com/fuelease/fuelease/pkg/http"
	"github.com/go-chi/chi/v5"
)

// FuelStationHandler serves fuel station inventory management
type FuelStationHandler struct {
	stationService *services.FuelStationService
	logger         *slog.Logger
}

func NewFuelStationHandler(stationService *services.FuelStationService, logger *slog.Logger) *FuelStationHandler {
	return &FuelStationHandler{
		stationService: stationService,
		logger:         logger,
	}
}

func (h *FuelStationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateFuelStationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	station, err := h.stationService.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, station)
}

func (h *FuelStationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	station, err := h.stationService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, station)
}

func (h *FuelStationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	stations, err := h.stationService.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, stations)
}

// ListByOperator returns the stations owned by one operator
func (h *FuelStationHandler) ListByOperator(w http.ResponseWriter, r *http.Request) {
	stations, err := h.stationService.ListByOperator(r.Context(), chi.URLParam(r, "operatorID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, stations)
}

func (h *FuelStationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateFuelStationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	station, err := h.stationService.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, station)
}

func (h *FuelStationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.stationService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
