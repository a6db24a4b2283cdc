package identity

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"hrportal/internal/domain/auth"
)

// FileStore keeps the identity as a signed token on disk, so an edited file
// is rejected instead of silently changing who the session belongs to.
type FileStore struct {
	Path   string
	Secret string
}

func NewFileStore(path, secret string) *FileStore {
	return &FileStore{Path: path, Secret: secret}
}

func (s *FileStore) Load() (Identity, error) {
	token, err := s.Token()
	if err != nil {
		return Identity{}, err
	}
	claims, err := auth.ParseToken(s.Secret, token)
	if err != nil {
		return Identity{}, fmt.Errorf("identity: cached session invalid: %w", err)
	}
	return FromUserContext(claims.UserContext), nil
}

func (s *FileStore) Save(id Identity) error {
	token, err := auth.GenerateToken(s.Secret, id.UserContext(), 0)
	if err != nil {
		return fmt.Errorf("identity: sign session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(token+"\n"), 0o600)
}

func (s *FileStore) Token() (string, error) {
	raw, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoIdentity
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", ErrNoIdentity
	}
	return token, nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
