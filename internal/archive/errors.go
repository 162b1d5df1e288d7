package archive

import "errors"

var (
	ErrEmptyBucket       = errors.New("archive bucket name is empty")
	ErrConnectingArchive = errors.New("error connecting to archive storage")
	ErrCreatingBucket    = errors.New("error creating archive bucket")
	ErrStoringObject     = errors.New("error storing archive object")
)
