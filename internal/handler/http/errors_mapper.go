package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-pii-labeler/internal/app"
	"github.com/MKhiriev/go-pii-labeler/internal/jsonl"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/service"
	"github.com/MKhiriev/go-pii-labeler/internal/spans"
	"github.com/MKhiriev/go-pii-labeler/internal/store"
	"github.com/MKhiriev/go-pii-labeler/internal/utils"
	"github.com/MKhiriev/go-pii-labeler/internal/validators"
	"github.com/MKhiriev/go-pii-labeler/models"
)

// errorStatusMap is consulted in order; the first match wins.
var errorStatusMap = []struct {
	err    error
	status int
}{
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrInvalidDocumentID, http.StatusBadRequest},
	{ErrInvalidLimit, http.StatusBadRequest},
	{ErrNoFileUploaded, http.StatusBadRequest},
	{ErrUploadTooLarge, http.StatusRequestEntityTooLarge},
	{ErrNotAuthenticated, http.StatusUnauthorized},
	{ErrAdminRequired, http.StatusForbidden},
	{ErrInvalidCredentials, http.StatusUnauthorized},
	{ErrInvalidGzipBody, http.StatusBadRequest},
	{ErrRouteNotFound, http.StatusNotFound},

	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrWrongPassword, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{service.ErrTokenRevoked, http.StatusUnauthorized},
	{service.ErrPermissionDenied, http.StatusForbidden},
	{service.ErrDuplicateDataIDInFile, http.StatusConflict},
	{service.ErrDataIDAlreadyExists, http.StatusConflict},
	{service.ErrNoDocumentsFound, http.StatusNotFound},
	{service.ErrInvalidSeedMode, http.StatusBadRequest},
	{service.ErrUnsupportedSeedFormat, http.StatusBadRequest},
	{service.ErrInvalidSeedEntry, http.StatusBadRequest},

	{validators.ErrMissingField, http.StatusBadRequest},
	{validators.ErrNegativeOffset, http.StatusBadRequest},
	{validators.ErrInvalidOffsetOrder, http.StatusBadRequest},
	{validators.ErrInvalidTagID, http.StatusBadRequest},
	{validators.ErrInvalidDocumentID, http.StatusBadRequest},
	{validators.ErrEmptyIDs, http.StatusBadRequest},

	{jsonl.ErrMalformedLine, http.StatusBadRequest},

	{spans.ErrEmptySpan, http.StatusBadRequest},
	{spans.ErrOffsetsOutOfRange, http.StatusBadRequest},
	{spans.ErrSpanMismatch, http.StatusBadRequest},

	{store.ErrLoginAlreadyExists, http.StatusConflict},
	{store.ErrNoUserWasFound, http.StatusNotFound},
	{store.ErrDocumentNotFound, http.StatusNotFound},
	{store.ErrTagNotFound, http.StatusNotFound},
	{store.ErrCategoryNotFound, http.StatusBadRequest},
	{store.ErrCategoryAlreadyExists, http.StatusConflict},
	{store.ErrCategoryInUse, http.StatusConflict},
	{store.ErrDuplicatePosition, http.StatusConflict},
	{store.ErrInvalidTag, http.StatusBadRequest},
}

func statusFromError(err error) int {
	for _, entry := range errorStatusMap {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	return http.StatusInternalServerError
}

// writeError logs err and writes the failure envelope. Unmapped errors are
// reported as "an error occurred: <err>" with status 500.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = fmt.Sprintf("%s: %v", app.MsgInternalErrorPrefix, err)
		logger.FromRequest(r).Err(err).Str("func", funcName).Msg("request failed")
	} else {
		logger.FromRequest(r).Warn().Err(err).Str("func", funcName).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.Response{Success: false, Message: message}, status)
}
