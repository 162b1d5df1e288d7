package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-pii-labeler/internal/app"
	"github.com/MKhiriev/go-pii-labeler/internal/service"
	"github.com/MKhiriev/go-pii-labeler/internal/utils"
	"github.com/MKhiriev/go-pii-labeler/models"
)

func (h *Handler) trimTags(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.trimTags", err)
		return
	}

	updated, err := h.services.TagService.TrimExisting(r.Context(), actor)
	if err != nil {
		writeError(w, r, "*Handler.trimTags", err)
		return
	}

	utils.WriteJSON(w, models.TrimResponse{
		Response: models.Response{Success: true, Message: fmt.Sprintf(app.FmtTagsTrimmed, updated)},
		Updated:  updated,
	}, http.StatusOK)
}

// seedCategories applies a JSON or YAML seed list from the request body.
// The mode query parameter selects add (default), update or clear.
func (h *Handler) seedCategories(w http.ResponseWriter, r *http.Request) {
	format := service.SeedFormatFromContentType(r.Header.Get("Content-Type"))

	entries, err := service.DecodeSeed(r.Body, format)
	if err != nil {
		writeError(w, r, "*Handler.seedCategories", err)
		return
	}

	mode := models.SeedMode(r.URL.Query().Get("mode"))

	result, err := h.services.CategoryService.Seed(r.Context(), entries, mode)
	if err != nil {
		writeError(w, r, "*Handler.seedCategories", err)
		return
	}

	utils.WriteJSON(w, models.SeedResponse{
		Response: models.Response{
			Success: true,
			Message: fmt.Sprintf(app.FmtCategoriesSeeded, result.Created, result.Updated),
		},
		SeedResult: result,
	}, http.StatusOK)
}
