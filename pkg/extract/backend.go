package extract

import (
	"context"
)

// FileState is the processing state of an uploaded document.
type FileState string

// File states
const (
	FileStateUnspecified FileState = "STATE_UNSPECIFIED"
	FileProcessing       FileState = "PROCESSING"
	FileActive           FileState = "ACTIVE"
	FileFailed           FileState = "FAILED"
)

// RemoteFile is a document uploaded to the extraction backend.
type RemoteFile struct {
	Name     string
	URI      string
	MIMEType string
	State    FileState
}

// GenerateRequest asks the backend to answer an instruction about a file.
type GenerateRequest struct {
	Model       string
	Instruction string
	Temperature float32
	File        *RemoteFile
}

// Generation is a backend answer. BlockReason is set when the backend
// refused the prompt or stopped the answer for safety.
type Generation struct {
	Text         string
	BlockReason  string
	FinishReason string
}

// Backend is the remote document model API.
type Backend interface {
	UploadFile(ctx context.Context, doc Document) (*RemoteFile, error)
	GetFile(ctx context.Context, name string) (*RemoteFile, error)
	DeleteFile(ctx context.Context, name string) error
	Generate(ctx context.Context, req GenerateRequest) (*Generation, error)
}
