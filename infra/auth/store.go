package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/CrestNiraj12/terminalqa/domain"
)

type storedCredential struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}

// FileStore persists the credential as a small JSON file. The file is read
// once on construction; afterwards the in-memory copy is authoritative.
type FileStore struct {
	path string

	mu   sync.Mutex
	cred domain.Credential
	ok   bool
}

// NewFileStore opens the store at path. A missing file means no credential.
// A file holding only one half of the pair is treated the same way.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading credential from %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return s, nil
	}

	var raw storedCredential
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing credential file %s: %w", path, err)
	}
	cred := domain.Credential{Token: raw.AccessToken, DisplayName: raw.Username}
	if cred.Complete() {
		s.cred, s.ok = cred, true
	}
	return s, nil
}

// Get returns the stored credential.
func (s *FileStore) Get() (domain.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred, s.ok
}

// Set writes both fields in one rename.
func (s *FileStore) Set(cred domain.Credential) error {
	if !cred.Complete() {
		return domain.Invalid("credential", "token and username are both required")
	}
	data, err := json.Marshal(storedCredential{AccessToken: cred.Token, Username: cred.DisplayName})
	if err != nil {
		return fmt.Errorf("encoding credential: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}
	s.cred, s.ok = cred, true
	return nil
}

// Clear removes the credential file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred, s.ok = domain.Credential{}, false
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing credential file: %w", err)
	}
	return nil
}

// AccessToken implements TokenProvider.
func (s *FileStore) AccessToken() (string, error) {
	return accessToken(s.Get())
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating credential directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credential-*")
	if err != nil {
		return fmt.Errorf("creating temp credential file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting credential file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing credential: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing credential file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing credential file: %w", err)
	}
	return nil
}

// MemoryStore keeps the credential for the life of the process.
type MemoryStore struct {
	mu   sync.Mutex
	cred domain.Credential
	ok   bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (domain.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred, s.ok
}

func (s *MemoryStore) Set(cred domain.Credential) error {
	if !cred.Complete() {
		return domain.Invalid("credential", "token and username are both required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred, s.ok = cred, true
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred, s.ok = domain.Credential{}, false
	return nil
}

func (s *MemoryStore) AccessToken() (string, error) {
	return accessToken(s.Get())
}
