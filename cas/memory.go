package cas

import (
	"bytes"
	"context"
	"sync"

	"github.com/ipfs/go-cid"
)

// Memory is an in-process CAS. The zero value is not usable; use NewMemory.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

func (m *Memory) Put(ctx context.Context, data []byte) (cid.Cid, error) {
	if err := ctx.Err(); err != nil {
		return cid.Undef, err
	}
	id, err := CIDFor(data)
	if err != nil {
		return cid.Undef, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.objects[id.KeyString()]; ok {
		if !bytes.Equal(existing, data) {
			return cid.Undef, ErrImmutable
		}
		return id, nil
	}
	m.objects[id.KeyString()] = bytes.Clone(data)
	return id, nil
}

func (m *Memory) Get(ctx context.Context, id cid.Cid) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !id.Defined() {
		return nil, ErrInvalidCID
	}
	m.mu.RLock()
	data, ok := m.objects[id.KeyString()]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(data), nil
}

func (m *Memory) Has(ctx context.Context, id cid.Cid) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !id.Defined() {
		return false, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[id.KeyString()]
	return ok, nil
}
