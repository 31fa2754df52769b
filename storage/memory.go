package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Memory keeps objects in process memory and serves them under baseURL. It
// is used when no Cloudinary account is configured.
type Memory struct {
	baseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemory(baseURL string) *Memory {
	if baseURL == "" {
		baseURL = "http://localhost:8080/files"
	}
	return &Memory{baseURL: strings.TrimRight(baseURL, "/"), objects: make(map[string][]byte)}
}

func (m *Memory) Upload(ctx context.Context, objectPath string, r io.Reader) (string, error) {
	if !ValidPath(objectPath) {
		return "", fmt.Errorf("upload: invalid object path %q", objectPath)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", fmt.Errorf("upload %s: %w", objectPath, err)
	}
	m.mu.Lock()
	m.objects[objectPath] = buf.Bytes()
	m.mu.Unlock()
	return m.baseURL + "/" + objectPath, nil
}

func (m *Memory) Delete(ctx context.Context, objectPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[objectPath]; !ok {
		return ErrNotFound
	}
	delete(m.objects, objectPath)
	return nil
}

func (m *Memory) List(ctx context.Context, prefix string) ([]Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Object
	for p, data := range m.objects {
		if strings.HasPrefix(p, prefix) {
			out = append(out, Object{Path: p, URL: m.baseURL + "/" + p, Size: int64(len(data))})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (m *Memory) URL(objectPath string) (string, error) {
	if !ValidPath(objectPath) {
		return "", fmt.Errorf("url: invalid object path %q", objectPath)
	}
	return m.baseURL + "/" + objectPath, nil
}

// Open returns the stored bytes of objectPath.
func (m *Memory) Open(objectPath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[objectPath]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}
