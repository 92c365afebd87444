// Package mapfile exposes a file's contents as a read-only byte slice,
// memory mapped where the platform allows it.
package mapfile

import "errors"

var ErrTooLarge = errors.New("mapfile: file too large to map")

// Mapping owns the bytes of one opened file. Bytes must not be written
// and is invalid after Close.
type Mapping struct {
	data  []byte
	unmap func([]byte) error
}

func (m *Mapping) Bytes() []byte {
	return m.data
}

func (m *Mapping) Len() int {
	return len(m.data)
}

func (m *Mapping) Close() error {
	data := m.data
	m.data = nil
	if data == nil || m.unmap == nil {
		return nil
	}
	return m.unmap(data)
}
