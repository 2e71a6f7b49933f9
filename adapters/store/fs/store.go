// Package storefs provides filesystem-backed artifact storage.
package storefs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-dashboard-export/export"
)

// Store writes artifacts under Root, one file per key plus a metadata
// sidecar. When BaseURL is set, stored refs carry a download URL built
// from it.
type Store struct {
	Root    string
	BaseURL string
	Now     func() time.Time
}

// NewStore creates a filesystem-backed artifact store.
func NewStore(root string) *Store {
	return &Store{Root: root, Now: time.Now}
}

type artifactMeta struct {
	ContentType string    `json:"contentType"`
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Put stores an artifact on disk. Writes go through a temp file and a
// rename so readers never observe partial content.
func (s *Store) Put(ctx context.Context, key string, artifact export.Artifact) (export.ArtifactRef, error) {
	_ = ctx
	if s == nil {
		return export.ArtifactRef{}, export.NewError(export.KindInternal, "store is nil", nil)
	}
	if s.Root == "" {
		return export.ArtifactRef{}, export.NewError(export.KindValidation, "store root is required", nil)
	}
	if key == "" {
		return export.ArtifactRef{}, export.NewError(export.KindValidation, "artifact key is required", nil)
	}

	pathOnDisk, err := s.resolvePath(key)
	if err != nil {
		return export.ArtifactRef{}, err
	}

	dir := filepath.Dir(pathOnDisk)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return export.ArtifactRef{}, err
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*")
	if err != nil {
		return export.ArtifactRef{}, err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(artifact.Data); err != nil {
		return export.ArtifactRef{}, err
	}
	if err := tmp.Sync(); err != nil {
		return export.ArtifactRef{}, err
	}
	if err := tmp.Close(); err != nil {
		return export.ArtifactRef{}, err
	}
	if err := os.Rename(tmp.Name(), pathOnDisk); err != nil {
		return export.ArtifactRef{}, err
	}

	meta := artifactMeta{
		ContentType: artifact.ContentType,
		Filename:    artifact.Filename,
		Size:        int64(len(artifact.Data)),
		CreatedAt:   s.now(),
	}
	if err := s.writeMeta(pathOnDisk, meta); err != nil {
		return export.ArtifactRef{}, err
	}

	ref := export.ArtifactRef{
		Key:       key,
		Size:      meta.Size,
		CreatedAt: meta.CreatedAt,
	}
	if s.BaseURL != "" {
		ref.URL = strings.TrimRight(s.BaseURL, "/") + "/" + key
	}
	return ref, nil
}

// Open reads an artifact from disk.
func (s *Store) Open(ctx context.Context, key string) (export.Artifact, error) {
	_ = ctx
	if s == nil {
		return export.Artifact{}, export.NewError(export.KindInternal, "store is nil", nil)
	}
	if s.Root == "" {
		return export.Artifact{}, export.NewError(export.KindValidation, "store root is required", nil)
	}
	if key == "" {
		return export.Artifact{}, export.NewError(export.KindValidation, "artifact key is required", nil)
	}

	pathOnDisk, err := s.resolvePath(key)
	if err != nil {
		return export.Artifact{}, err
	}

	data, err := os.ReadFile(pathOnDisk)
	if err != nil {
		if os.IsNotExist(err) {
			return export.Artifact{}, export.NewError(export.KindNotFound, fmt.Sprintf("artifact %q not found", key), err)
		}
		return export.Artifact{}, err
	}

	meta := s.readMeta(pathOnDisk)
	filename := meta.Filename
	if filename == "" {
		filename = path.Base(key)
	}

	return export.Artifact{
		ContentType: meta.ContentType,
		Filename:    filename,
		Data:        data,
	}, nil
}

// Delete removes an artifact and its metadata from disk.
func (s *Store) Delete(ctx context.Context, key string) error {
	_ = ctx
	if s == nil {
		return export.NewError(export.KindInternal, "store is nil", nil)
	}
	if s.Root == "" {
		return export.NewError(export.KindValidation, "store root is required", nil)
	}
	if key == "" {
		return export.NewError(export.KindValidation, "artifact key is required", nil)
	}

	pathOnDisk, err := s.resolvePath(key)
	if err != nil {
		return err
	}
	_ = os.Remove(pathOnDisk)
	_ = os.Remove(metaPath(pathOnDisk))
	return nil
}

func (s *Store) resolvePath(key string) (string, error) {
	clean := path.Clean("/" + key)
	rel := strings.TrimPrefix(clean, "/")
	if rel == "" || rel == "." {
		return "", export.NewError(export.KindValidation, "invalid artifact key", nil)
	}

	root, err := filepath.Abs(s.Root)
	if err != nil {
		return "", err
	}
	target := filepath.Join(root, filepath.FromSlash(rel))
	if !strings.HasPrefix(target, root+string(os.PathSeparator)) && target != root {
		return "", export.NewError(export.KindValidation, "artifact key escapes root", nil)
	}
	return target, nil
}

func (s *Store) writeMeta(pathOnDisk string, meta artifactMeta) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	dir := filepath.Dir(pathOnDisk)
	tmp, err := os.CreateTemp(dir, ".meta-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(payload); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), metaPath(pathOnDisk))
}

func (s *Store) readMeta(pathOnDisk string) artifactMeta {
	data, err := os.ReadFile(metaPath(pathOnDisk))
	if err != nil {
		return artifactMeta{}
	}
	var meta artifactMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return artifactMeta{}
	}
	return meta
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func metaPath(pathOnDisk string) string {
	return pathOnDisk + ".meta.json"
}
