// Package auth persists OAuth2 tokens between runs.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Store is a file-backed token cache. All reads and writes of the token go
// through one mutex, so concurrent refreshes cannot interleave.
type Store struct {
	path     string
	upstream oauth2.TokenSource

	mu    sync.Mutex
	token *oauth2.Token
}

// NewStore returns a store persisting to path. upstream mints a token when
// the cached one is missing or expired; it may be nil for a read-only store.
func NewStore(path string, upstream oauth2.TokenSource) *Store {
	return &Store{path: path, upstream: upstream}
}

// Token returns a valid token, refreshing and persisting it when needed.
// It implements oauth2.TokenSource.
func (s *Store) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.updateLocked(func(cur *oauth2.Token) (*oauth2.Token, error) {
		if cur.Valid() {
			return cur, nil
		}
		if s.upstream == nil {
			return nil, errors.New("token expired and no upstream source")
		}
		tok, err := s.upstream.Token()
		if err != nil {
			return nil, fmt.Errorf("refresh token: %w", err)
		}
		return tok, nil
	})
	if err != nil {
		return nil, err
	}
	return s.token, nil
}

// update applies fn to the current token under the store lock and persists
// the result.
func (s *Store) update(fn func(*oauth2.Token) (*oauth2.Token, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(fn)
}

// updateLocked is update with s.mu held. A token returned unchanged is not
// written again.
func (s *Store) updateLocked(fn func(*oauth2.Token) (*oauth2.Token, error)) error {
	if s.token == nil {
		tok, err := s.load()
		if err != nil {
			return err
		}
		s.token = tok
	}
	next, err := fn(s.token)
	if err != nil {
		return err
	}
	if next == nil {
		return errors.New("update returned a nil token")
	}
	if next == s.token {
		return nil
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.token = next
	return nil
}

// load reads the persisted token. A missing file is an empty, invalid token.
func (s *Store) load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &oauth2.Token{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decode token %s: %w", s.path, err)
	}
	return &tok, nil
}

// save writes the token through a temp file and rename.
func (s *Store) save(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".token-*")
	if err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write token: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write token: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write token: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}

// ServiceAccountSource returns a token source for a service account key file.
func ServiceAccountSource(ctx context.Context, keyPath string, scopes ...string) (oauth2.TokenSource, error) {
	data, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials %s: %w", keyPath, err)
	}
	return creds.TokenSource, nil
}
