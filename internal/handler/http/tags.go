package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-pii-labeler/internal/app"
	"github.com/MKhiriev/go-pii-labeler/internal/utils"
	"github.com/MKhiriev/go-pii-labeler/models"
)

func (h *Handler) addTag(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.addTag", err)
		return
	}

	var req models.AddTagRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "*Handler.addTag", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	tag, err := h.services.TagService.Add(r.Context(), actor, req)
	if err != nil {
		writeError(w, r, "*Handler.addTag", err)
		return
	}

	utils.WriteJSON(w, models.TagResponse{
		Response: models.Response{Success: true, Message: app.MsgTagAdded},
		Tag:      &tag,
	}, http.StatusCreated)
}

func (h *Handler) updateTag(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.updateTag", err)
		return
	}

	var req models.UpdateTagRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "*Handler.updateTag", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	tag, err := h.services.TagService.Update(r.Context(), actor, req)
	if err != nil {
		writeError(w, r, "*Handler.updateTag", err)
		return
	}

	utils.WriteJSON(w, models.TagResponse{
		Response: models.Response{Success: true, Message: app.MsgTagUpdated},
		Tag:      &tag,
	}, http.StatusOK)
}

func (h *Handler) deleteTag(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.deleteTag", err)
		return
	}

	var req models.DeleteTagRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "*Handler.deleteTag", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	result, err := h.services.TagService.Delete(r.Context(), actor, req)
	if err != nil {
		writeError(w, r, "*Handler.deleteTag", err)
		return
	}

	message := app.MsgTagDeleted
	if len(result.Reparented) > 0 {
		message = fmt.Sprintf(app.FmtTagDeletedReparented, len(result.Reparented))
	}

	utils.WriteJSON(w, models.DeleteTagResponse{
		Response:        models.Response{Success: true, Message: message},
		DeleteTagResult: result,
	}, http.StatusOK)
}
