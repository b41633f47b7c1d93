package storage

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

type memObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

// MemoryStore keeps objects in process memory (tests, local dev).
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memObject
	base    string
}

func NewMemoryStore(publicBase string) *MemoryStore {
	if publicBase == "" {
		publicBase = "http://localhost/media"
	}
	return &MemoryStore{
		objects: make(map[string]memObject),
		base:    strings.TrimRight(publicBase, "/"),
	}
}

func (m *MemoryStore) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memObject{data: buf.Bytes(), contentType: contentType, modified: time.Now().UTC()}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *MemoryStore) List(_ context.Context, prefix string) ([]ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ObjectInfo, 0, len(m.objects))
	for k, o := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, ObjectInfo{Key: k, Size: int64(len(o.data)), LastModified: o.modified, URL: m.PublicURL(k)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *MemoryStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return m.base + "/" + key
}

func (m *MemoryStore) KeyFromReference(ref string) string {
	return keyFromReference(ref, "", m.base)
}

// Get returns a copy of the stored bytes.
func (m *MemoryStore) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	if !ok {
		return nil, "", false
	}
	return append([]byte(nil), o.data...), o.contentType, true
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
