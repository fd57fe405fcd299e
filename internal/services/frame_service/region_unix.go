//go:build unix

package frame_service

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const shmDir = "/dev/shm"

func regionDir() string {
	if st, err := os.Stat(shmDir); err == nil && st.IsDir() {
		return shmDir
	}
	return os.TempDir()
}

// openRegion создает (или переиспользует) файл в /dev/shm и отображает его в память
func openRegion(name string, size int) (*SharedRegion, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid region size %d", size)
	}
	path := filepath.Join(regionDir(), name)

	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CREAT, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		_ = unix.Close(fd)
		_ = os.Remove(path)
		return nil, fmt.Errorf("truncate %s to %d bytes: %w", path, size, err)
	}
	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		_ = os.Remove(path)
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	return &SharedRegion{name: name, path: path, size: size, fd: fd, data: data}, nil
}

func closeRegion(r *SharedRegion) error {
	var firstErr error
	if r.data != nil {
		if err := unix.Munmap(r.data); err != nil {
			firstErr = fmt.Errorf("munmap %s: %w", r.path, err)
		}
		r.data = nil
	}
	if r.fd >= 0 {
		if err := unix.Close(r.fd); err != nil && firstErr == nil {
			firstErr = err
		}
		r.fd = -1
	}
	if r.path != "" {
		if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
