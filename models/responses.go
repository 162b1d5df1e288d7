package models

// Response is the envelope shared by every JSON endpoint.
// Endpoint-specific responses embed it so the payload fields sit next to
// success and message.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DocumentRequest identifies a single document.
type DocumentRequest struct {
	DocumentID int64 `json:"document_id"`
}

// DocumentIDsRequest identifies a set of documents.
type DocumentIDsRequest struct {
	DocumentIDs []int64 `json:"document_ids"`
}

// TagResponse is returned by add and update tag operations.
type TagResponse struct {
	Response
	Tag *Tag `json:"tag,omitempty"`
}

// DeleteTagResponse is returned by the delete tag operation.
type DeleteTagResponse struct {
	Response
	DeleteTagResult
}

// BulkDeleteResponse is returned by the bulk document delete operation.
type BulkDeleteResponse struct {
	Response
	DeletedCount int `json:"deleted_count"`
}

// ImportResponse is returned by the upload operation.
type ImportResponse struct {
	Response
	ImportResult
}

// DocumentListResponse is returned by the document list operation.
type DocumentListResponse struct {
	Response
	Documents []Document `json:"documents"`
}

// DocumentDetailResponse is returned by the document detail operation.
type DocumentDetailResponse struct {
	Response
	DocumentDetail
}

// CategoryListResponse is returned by the category list operation.
type CategoryListResponse struct {
	Response
	Categories []Category `json:"categories"`
}

// SeedResponse is returned by the category seed operation.
type SeedResponse struct {
	Response
	SeedResult
}

// TrimResponse is returned by the trim maintenance operation.
type TrimResponse struct {
	Response
	Updated int `json:"updated"`
}
