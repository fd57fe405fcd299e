//go:build !unix

package frame_service

import "fmt"

// На платформах без mmap область живет в куче процесса и доступна через ReadRegion
func openRegion(name string, size int) (*SharedRegion, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid region size %d", size)
	}
	return &SharedRegion{name: name, size: size, fd: -1, data: make([]byte, size)}, nil
}

func closeRegion(r *SharedRegion) error {
	r.data = nil
	return nil
}
