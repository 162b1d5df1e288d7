// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-pii-labeler/internal/app"
	"github.com/MKhiriev/go-pii-labeler/internal/utils"
	"github.com/MKhiriev/go-pii-labeler/models"
)

const (
	uploadFormField    = "jsonl_file"
	multipartMaxMemory = 8 << 20

	jsonlContentType = "application/jsonl; charset=utf-8"
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.listDocuments", err)
		return
	}

	limit := -1
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, r, "*Handler.listDocuments", fmt.Errorf("%w: %q", ErrInvalidLimit, raw))
			return
		}
	}

	docs, err := h.services.DocumentService.List(r.Context(), actor, limit)
	if err != nil {
		writeError(w, r, "*Handler.listDocuments", err)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}

	utils.WriteJSON(w, models.DocumentListResponse{
		Response:  models.Response{Success: true},
		Documents: docs,
	}, http.StatusOK)
}

func (h *Handler) documentDetail(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.documentDetail", err)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, "*Handler.documentDetail", fmt.Errorf("%w: %q", ErrInvalidDocumentID, chi.URLParam(r, "id")))
		return
	}

	detail, err := h.services.DocumentService.Detail(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, "*Handler.documentDetail", err)
		return
	}

	utils.WriteJSON(w, models.DocumentDetailResponse{
		Response:       models.Response{Success: true},
		DocumentDetail: detail,
	}, http.StatusOK)
}

// uploadDocuments imports a JSONL file sent either as the jsonl_file field
// of a multipart form or as the raw request body.
func (h *Handler) uploadDocuments(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.uploadDocuments", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	raw, err := readUpload(r)
	if err != nil {
		writeError(w, r, "*Handler.uploadDocuments", err)
		return
	}

	result, err := h.services.DocumentService.Import(r.Context(), actor, raw)
	if err != nil {
		writeError(w, r, "*Handler.uploadDocuments", err)
		return
	}

	utils.WriteJSON(w, models.ImportResponse{
		Response: models.Response{
			Success: true,
			Message: fmt.Sprintf(app.FmtDocumentsImported, result.Documents, result.Tags),
		},
		ImportResult: result,
	}, http.StatusCreated)
}

func readUpload(r *http.Request) ([]byte, error) {
	var body io.Reader = r.Body

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(multipartMaxMemory); err != nil {
			return nil, uploadError(err)
		}
		file, _, err := r.FormFile(uploadFormField)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return nil, ErrNoFileUploaded
			}
			return nil, uploadError(err)
		}
		defer file.Close()
		body = file
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, uploadError(err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrNoFileUploaded
	}

	return raw, nil
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Errorf("%w: limit is %d bytes", ErrUploadTooLarge, tooLarge.Limit)
	}
	return fmt.Errorf("%w: %w", ErrNoFileUploaded, err)
}

func (h *Handler) exportDocuments(w http.ResponseWriter, r *http.Request) {
	actor, ids, ok := h.documentIDs(w, r, "*Handler.exportDocuments")
	if !ok {
		return
	}

	out, err := h.services.DocumentService.Export(r.Context(), actor, ids)
	if err != nil {
		writeError(w, r, "*Handler.exportDocuments", err)
		return
	}

	lines := bytes.Count(out, []byte("\n")) + 1
	writeAttachment(w, out, jsonlContentType, fmt.Sprintf("documents_%d.jsonl", lines))
}

func (h *Handler) exportDocumentsXLSX(w http.ResponseWriter, r *http.Request) {
	actor, ids, ok := h.documentIDs(w, r, "*Handler.exportDocumentsXLSX")
	if !ok {
		return
	}

	out, err := h.services.DocumentService.ExportXLSX(r.Context(), actor, ids)
	if err != nil {
		writeError(w, r, "*Handler.exportDocumentsXLSX", err)
		return
	}

	writeAttachment(w, out, xlsxContentType, fmt.Sprintf("documents_%d.xlsx", len(ids)))
}

func writeAttachment(w http.ResponseWriter, body []byte, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.deleteDocument", err)
		return
	}

	var req models.DocumentRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "*Handler.deleteDocument", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}
	if err = h.validator.Validate(r.Context(), req); err != nil {
		writeError(w, r, "*Handler.deleteDocument", err)
		return
	}

	if err = h.services.DocumentService.Delete(r.Context(), actor, req.DocumentID); err != nil {
		writeError(w, r, "*Handler.deleteDocument", err)
		return
	}

	utils.WriteJSON(w, models.Response{Success: true, Message: app.MsgDocumentDeleted}, http.StatusOK)
}

func (h *Handler) bulkDeleteDocuments(w http.ResponseWriter, r *http.Request) {
	actor, ids, ok := h.documentIDs(w, r, "*Handler.bulkDeleteDocuments")
	if !ok {
		return
	}

	deleted, err := h.services.DocumentService.BulkDelete(r.Context(), actor, ids)
	if err != nil {
		writeError(w, r, "*Handler.bulkDeleteDocuments", err)
		return
	}

	utils.WriteJSON(w, models.BulkDeleteResponse{
		Response:     models.Response{Success: true, Message: fmt.Sprintf(app.FmtDocumentsDeleted, deleted)},
		DeletedCount: deleted,
	}, http.StatusOK)
}

// documentIDs decodes and validates a {document_ids} body. On failure the
// error response is already written.
func (h *Handler) documentIDs(w http.ResponseWriter, r *http.Request, funcName string) (models.Actor, []int64, bool) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, r, funcName, err)
		return models.Actor{}, nil, false
	}

	var req models.DocumentIDsRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, funcName, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return models.Actor{}, nil, false
	}
	if err = h.validator.Validate(r.Context(), req); err != nil {
		writeError(w, r, funcName, err)
		return models.Actor{}, nil, false
	}

	return actor, req.DocumentIDs, true
}
