// Package stores holds the client side state containers: search history,
// subscriptions, player and UI. Each is injectable, mutex guarded and persists
// its durable fields through a Blob
package stores

import (
	"encoding/json"
	"sync"

	"videotube/internal/platform/logger"
)

// Blob persists small named JSON documents
type Blob interface {
	Load(name string) ([]byte, bool, error)
	Save(name string, data []byte) error
}

// MemoryBlob is an in-process Blob
type MemoryBlob struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemoryBlob returns an empty MemoryBlob
func NewMemoryBlob() *MemoryBlob { return &MemoryBlob{docs: map[string][]byte{}} }

func (m *MemoryBlob) Load(name string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.docs[name]
	return append([]byte(nil), b...), ok, nil
}

func (m *MemoryBlob) Save(name string, data []byte) error {
	m.mu.Lock()
	m.docs[name] = append([]byte(nil), data...)
	m.mu.Unlock()
	return nil
}

// restore decodes blob name into dst; a missing or corrupt blob leaves dst untouched
func restore(b Blob, name string, dst any) {
	if b == nil {
		return
	}
	data, ok, err := b.Load(name)
	if err != nil {
		logger.Named("stores").Warn().Err(err).Str("blob", name).Msg("blob load failed")
		return
	}
	if !ok || len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.Named("stores").Warn().Err(err).Str("blob", name).Msg("blob corrupt; starting empty")
	}
}

// persist writes v as blob name; failures are logged, never surfaced to the action
func persist(b Blob, name string, v any) {
	if b == nil {
		return
	}
	data, err := json.Marshal(v)
	if err == nil {
		err = b.Save(name, data)
	}
	if err != nil {
		logger.Named("stores").Warn().Err(err).Str("blob", name).Msg("blob save failed")
	}
}

// jsonTuple encodes values as a JSON array
func jsonTuple(vals ...any) ([]byte, error) { return json.Marshal(vals) }

// jsonUntuple decodes a JSON array positionally into dsts
func jsonUntuple(b []byte, dsts ...any) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for i := 0; i < len(raw) && i < len(dsts); i++ {
		if err := json.Unmarshal(raw[i], dsts[i]); err != nil {
			return err
		}
	}
	return nil
}
