//go:build !unix

package mapfile

import "os"

// Open reads path into memory on platforms without mmap support.
func Open(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data}, nil
}
