package http

import (
	"net/http"

	"github.com/MKhiriev/go-pii-labeler/internal/utils"
	"github.com/MKhiriev/go-pii-labeler/models"
)

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.services.CategoryService.List(r.Context())
	if err != nil {
		writeError(w, r, "*Handler.listCategories", err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	utils.WriteJSON(w, models.CategoryListResponse{
		Response:   models.Response{Success: true},
		Categories: categories,
	}, http.StatusOK)
}
