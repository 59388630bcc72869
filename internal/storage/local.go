package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ObjectStore persists attachment payloads. Keys are deterministic paths
// derived from the ticket number so a ticket's files live together and can
// be removed as a unit.
type ObjectStore interface {
	Save(ticketNumber, filename string, r io.Reader) (key string, size int64, err error)
	Delete(key string) error
	RemoveTicketFiles(ticketNumber string) error
	Open(key string) (io.ReadCloser, error)
}

// LocalStore keeps payloads on the local filesystem under a base directory.
type LocalStore struct {
	base string
}

// NewLocalStore constructs the store rooted at base.
func NewLocalStore(base string) *LocalStore {
	return &LocalStore{base: base}
}

// Save writes the payload under chamados/<numero>/anexos/ with a
// collision-proof name, returning the storage key and written byte count.
func (s *LocalStore) Save(ticketNumber, filename string, r io.Reader) (string, int64, error) {
	key := filepath.ToSlash(filepath.Join("chamados", ticketNumber, "anexos",
		uuid.NewString()+"_"+sanitizeFilename(filename)))
	path := filepath.Join(s.base, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", 0, fmt.Errorf("create attachment dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create attachment file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("write attachment: %w", err)
	}
	return key, size, nil
}

// Delete removes the payload for key. A missing file is reported via
// os.IsNotExist so callers can treat it as a recoverable anomaly.
func (s *LocalStore) Delete(key string) error {
	return os.Remove(filepath.Join(s.base, filepath.FromSlash(key)))
}

// RemoveTicketFiles deletes every stored payload for a ticket.
func (s *LocalStore) RemoveTicketFiles(ticketNumber string) error {
	return os.RemoveAll(filepath.Join(s.base, "chamados", ticketNumber))
}

// Open returns the payload for key.
func (s *LocalStore) Open(key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.base, filepath.FromSlash(key)))
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "_")
	if name == "" || name == "." {
		return "arquivo"
	}
	return name
}
