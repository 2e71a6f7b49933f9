package export

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryTracker records export outcomes in memory (test/dev only).
type MemoryTracker struct {
	mu      sync.RWMutex
	records []ExportRecord
}

// NewMemoryTracker creates an in-memory tracker.
func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{}
}

// Record appends an export record.
func (t *MemoryTracker) Record(ctx context.Context, record ExportRecord) error {
	_ = ctx
	t.mu.Lock()
	t.records = append(t.records, record)
	t.mu.Unlock()
	return nil
}

// List returns recorded exports, newest first.
func (t *MemoryTracker) List(ctx context.Context) ([]ExportRecord, error) {
	_ = ctx
	t.mu.RLock()
	defer t.mu.RUnlock()
	result := make([]ExportRecord, len(t.records))
	for i, record := range t.records {
		result[len(t.records)-1-i] = record
	}
	return result, nil
}

// MemoryStore keeps artifacts in memory (test/dev only).
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]Artifact
	refs    map[string]ArtifactRef
}

// NewMemoryStore creates an in-memory artifact store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]Artifact),
		refs:    make(map[string]ArtifactRef),
	}
}

// Put stores an artifact.
func (s *MemoryStore) Put(ctx context.Context, key string, artifact Artifact) (ArtifactRef, error) {
	_ = ctx
	if key == "" {
		return ArtifactRef{}, NewError(KindValidation, "artifact key is required", nil)
	}

	ref := ArtifactRef{
		Key:       key,
		Size:      int64(len(artifact.Data)),
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.objects[key] = artifact
	s.refs[key] = ref
	s.mu.Unlock()

	return ref, nil
}

// Stat returns the stored reference for a key without reading the
// artifact bytes.
func (s *MemoryStore) Stat(ctx context.Context, key string) (ArtifactRef, error) {
	_ = ctx
	s.mu.RLock()
	ref, ok := s.refs[key]
	s.mu.RUnlock()
	if !ok {
		return ArtifactRef{}, NewError(KindNotFound, fmt.Sprintf("artifact %q not found", key), nil)
	}
	return ref, nil
}

// Open reads an artifact.
func (s *MemoryStore) Open(ctx context.Context, key string) (Artifact, error) {
	_ = ctx
	s.mu.RLock()
	artifact, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return Artifact{}, NewError(KindNotFound, fmt.Sprintf("artifact %q not found", key), nil)
	}
	return artifact, nil
}

// Delete removes an artifact.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	_ = ctx
	s.mu.Lock()
	delete(s.objects, key)
	delete(s.refs, key)
	s.mu.Unlock()
	return nil
}
