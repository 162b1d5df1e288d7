package service

import (
	"context"
	"errors"

	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-pii-labeler/internal/mock"
)

var errStorage = errors.New("storage error")

// expectTransaction makes tx run the callback it receives, as the real
// store does, and return whatever the callback returns.
func expectTransaction(tx *mock.MockTransactor) *gomock.Call {
	return tx.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func int64Ptr(v int64) *int64 { return &v }
