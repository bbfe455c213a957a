package pdfview

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSystem is the minimal file-system surface staging needs: write a file,
// delete a file, and checksum an existing file. The default implementation is
// backed by the os package; tests may substitute their own.
type FileSystem interface {
	// Write stores data at path, creating parent directories as needed and
	// overwriting any previous content.
	Write(path string, data []byte) error

	// Remove deletes the file at path. Removing a file that does not exist
	// is not an error.
	Remove(path string) error

	// Checksum returns the SHA-256 hex digest of the file at path, or an
	// error if the file cannot be read.
	Checksum(path string) (string, error)
}

// osFS implements FileSystem on the local disk.
type osFS struct{}

func (osFS) Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (osFS) Remove(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (osFS) Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// defaultCacheDir returns the per-user cache directory the stager writes to
// when no explicit directory is configured.
func defaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "pdfview"), nil
}
