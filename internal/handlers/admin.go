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

// AdminHandler serves administrator account management
type AdminHandler struct {
	adminService *services.AdminService
	uploadConfig *config.UploadConfig
	logger       *slog.Logger
}

func NewAdminHandler(adminService *services.AdminService, uploadConfig *config.UploadConfig, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		uploadConfig: uploadConfig,
		logger:       logger,
	}
}

func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	admin, err := h.adminService.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, admin)
}

func (h *AdminHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	admin, err := h.adminService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, admin)
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	admins, err := h.adminService.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, admins)
}

// ListByStatus filters administrators by account status
func (h *AdminHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	admins, err := h.adminService.ListByStatus(r.Context(), chi.URLParam(r, "status"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, admins)
}

// ListOlderThan returns administrators above the given age
func (h *AdminHandler) ListOlderThan(w http.ResponseWriter, r *http.Request) {
	age, err := strconv.Atoi(chi.URLParam(r, "age"))
	if err != nil {
		pkghttp.WriteBadRequest(w, "age must be a number")
		return
	}

	admins, err := h.adminService.ListOlderThan(r.Context(), age)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, admins)
}

func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	admin, err := h.adminService.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, admin)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	if err := ValidateRequest(&req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	admin, err := h.adminService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, admin)
}

// UploadProfileImage accepts a multipart "file" field
func (h *AdminHandler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	path, err := saveUploadedImage(r, "file", h.uploadConfig)
	if err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	admin, err := h.adminService.UpdateProfileImage(r.Context(), chi.URLParam(r, "id"), path)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, admin)
}

// UploadNIDImage accepts a multipart "file" field holding the national ID scan
func (h *AdminHandler) UploadNIDImage(w http.ResponseWriter, r *http.Request) {
	path, err := saveUploadedImage(r, "file", h.uploadConfig)
	if err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	admin, err := h.adminService.UpdateNIDImage(r.Context(), chi.URLParam(r, "id"), path)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, admin)
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
