package extract_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/agentstation/restock/pkg/extract"
)

// fakeBackend scripts Generate answers and records every call.
type fakeBackend struct {
	mu        sync.Mutex
	answers   []answer
	uploadErr error
	states    []extract.FileState

	uploaded []string
	deleted  []string
	requests []extract.GenerateRequest
}

type answer struct {
	gen *extract.Generation
	err error
}

func (f *fakeBackend) UploadFile(_ context.Context, doc extract.Document) (*extract.RemoteFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	name := fmt.Sprintf("files/%d", len(f.uploaded)+1)
	f.uploaded = append(f.uploaded, name)
	state := extract.FileActive
	if len(f.states) > 0 {
		state = f.states[0]
	}
	return &extract.RemoteFile{Name: name, URI: "https://example.test/" + name, MIMEType: doc.MIMEType, State: state}, nil
}

func (f *fakeBackend) GetFile(_ context.Context, name string) (*extract.RemoteFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state := extract.FileActive
	if len(f.states) > 1 {
		f.states = f.states[1:]
		state = f.states[0]
	}
	return &extract.RemoteFile{Name: name, State: state}, nil
}

func (f *fakeBackend) DeleteFile(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeBackend) Generate(_ context.Context, req extract.GenerateRequest) (*extract.Generation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if len(f.answers) == 0 {
		return &extract.Generation{}, nil
	}
	a := f.answers[0]
	if len(f.answers) > 1 {
		f.answers = f.answers[1:]
	}
	return a.gen, a.err
}

func text(s string) answer {
	return answer{gen: &extract.Generation{Text: s, FinishReason: "STOP"}}
}
