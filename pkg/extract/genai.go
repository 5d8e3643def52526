package extract

import (
	"bytes"
	"context"

	"google.golang.org/genai"

	"github.com/agentstation/restock/pkg/errors"
)

const providerGemini = "gemini"

// genaiBackend talks to the Gemini API through the Google GenAI SDK.
type genaiBackend struct {
	client *genai.Client
}

// NewGenAIBackend creates a Gemini API backend authenticated with an API key.
func NewGenAIBackend(ctx context.Context, apiKey string) (Backend, error) {
	if apiKey == "" {
		return nil, &errors.AuthenticationError{
			Provider: providerGemini,
			Method:   "api-key",
			Message:  "API key required, set GEMINI_API_KEY",
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, errors.NewConfigError(providerGemini, "creating genai client", err)
	}
	return &genaiBackend{client: client}, nil
}

func (b *genaiBackend) UploadFile(ctx context.Context, doc Document) (*RemoteFile, error) {
	f, err := b.client.Files.Upload(ctx, bytes.NewReader(doc.Data), &genai.UploadFileConfig{
		MIMEType:    doc.MIMEType,
		DisplayName: doc.Name,
	})
	if err != nil {
		return nil, apiError("files.upload", err)
	}
	return remoteFile(f), nil
}

func (b *genaiBackend) GetFile(ctx context.Context, name string) (*RemoteFile, error) {
	f, err := b.client.Files.Get(ctx, name, nil)
	if err != nil {
		return nil, apiError("files.get", err)
	}
	return remoteFile(f), nil
}

func (b *genaiBackend) DeleteFile(ctx context.Context, name string) error {
	if _, err := b.client.Files.Delete(ctx, name, nil); err != nil {
		return apiError("files.delete", err)
	}
	return nil
}

func (b *genaiBackend) Generate(ctx context.Context, req GenerateRequest) (*Generation, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Instruction)}
	if req.File != nil {
		parts = append(parts, genai.NewPartFromURI(req.File.URI, req.File.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := b.client.Models.GenerateContent(ctx, req.Model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	})
	if err != nil {
		return nil, apiError("models.generateContent", err)
	}

	gen := &Generation{Text: resp.Text()}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		gen.BlockReason = string(resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		finish := resp.Candidates[0].FinishReason
		gen.FinishReason = string(finish)
		if gen.BlockReason == "" && blockingFinish(finish) {
			gen.BlockReason = string(finish)
		}
	}
	return gen, nil
}

func blockingFinish(reason genai.FinishReason) bool {
	switch reason {
	case genai.FinishReasonSafety,
		genai.FinishReasonRecitation,
		genai.FinishReasonBlocklist,
		genai.FinishReasonProhibitedContent,
		genai.FinishReasonSPII:
		return true
	default:
		return false
	}
}

func remoteFile(f *genai.File) *RemoteFile {
	return &RemoteFile{
		Name:     f.Name,
		URI:      f.URI,
		MIMEType: f.MIMEType,
		State:    FileState(f.State),
	}
}

// apiError maps SDK errors onto errors.APIError, keeping the HTTP status.
func apiError(endpoint string, err error) error {
	var sdkErr genai.APIError
	if errors.As(err, &sdkErr) {
		return &errors.APIError{
			Provider:   providerGemini,
			StatusCode: sdkErr.Code,
			Message:    sdkErr.Message,
			Endpoint:   endpoint,
			Err:        err,
		}
	}
	return &errors.APIError{
		Provider: providerGemini,
		Message:  err.Error(),
		Endpoint: endpoint,
		Err:      err,
	}
}
