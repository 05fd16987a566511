package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fuelease/fuelease/internal/config"
	"github.com/fuelease/fuelease/internal/services"
	pkghttp "github.com/fuelease/fuelease/pkg/http"
	"github.com/go-chi/chi/v5"
)

// OperatorHandler serves station operator account management
type OperatorHandler struct {
	operatorService *services.OperatorService
	uploadConfig    *config.UploadConfig
	logger          *slog.Logger
}

func NewOperatorHandler(operatorService *services.OperatorService, uploadConfig *config.UploadConfig, logger *slog.Logger) *OperatorHandler {
	return &OperatorHandler{
		operatorService: operatorService,
		uploadConfig:    uploadConfig,
		logger:          logger,
	}
}

func (h *OperatorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateOperatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	operator, err := h.operatorService.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, operator)
}

func (h *OperatorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	operator, err := h.operatorService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, operator)
}

func (h *OperatorHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	operators, err := h.operatorService.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, operators)
}

func (h *OperatorHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateOperatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	operator, err := h.operatorService.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, operator)
}

func (h *OperatorHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	operator, err := h.operatorService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, operator)
}

// UploadProfileImage accepts a multipart "file" field
func (h *OperatorHandler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	path, err := saveUploadedImage(r, "file", h.uploadConfig)
	if err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	operator, err := h.operatorService.UpdateProfileImage(r.Context(), chi.URLParam(r, "id"), path)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, operator)
}

func (h *OperatorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.operatorService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
