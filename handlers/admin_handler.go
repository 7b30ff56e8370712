package handlers

import (
	"net/http"

	"github.com/Dosada05/league-system/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(as services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: as}
}

func (h *AdminHandler) ResetData(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.ResetData(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
