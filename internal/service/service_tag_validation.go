package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pii-labeler/internal/validators"
	"github.com/MKhiriev/go-pii-labeler/models"
)

// TagValidationService rejects malformed tag requests before they reach the
// wrapped TagService.
type TagValidationService struct {
	inner     TagService
	validator validators.Validator
}

func NewTagValidationService() TagServiceWrapper {
	return &TagValidationService{
		validator: validators.NewTagValidator(),
	}
}

func (v *TagValidationService) Wrap(inner TagService) TagService {
	return &TagValidationService{inner: inner, validator: v.validator}
}

func (v *TagValidationService) Add(ctx context.Context, actor models.Actor, req models.AddTagRequest) (models.Tag, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Tag{}, fmt.Errorf("add tag request validation failed: %w", err)
	}

	return v.inner.Add(ctx, actor, req)
}

func (v *TagValidationService) Update(ctx context.Context, actor models.Actor, req models.UpdateTagRequest) (models.Tag, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Tag{}, fmt.Errorf("update tag request validation failed: %w", err)
	}

	return v.inner.Update(ctx, actor, req)
}

func (v *TagValidationService) Delete(ctx context.Context, actor models.Actor, req models.DeleteTagRequest) (models.DeleteTagResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.DeleteTagResult{}, fmt.Errorf("delete tag request validation failed: %w", err)
	}

	return v.inner.Delete(ctx, actor, req)
}

func (v *TagValidationService) TrimExisting(ctx context.Context, actor models.Actor) (int, error) {
	return v.inner.TrimExisting(ctx, actor)
}
