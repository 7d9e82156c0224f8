package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

const linkTokenType = "file_link"

type LocalStorage struct {
	basePath string
	baseURL  string // e.g., "http://localhost:8080/uploads"
	signer   *jwtauth.JWTAuth
}

// NewLocalStorage keeps files under basePath. Links returned by GetURL carry a
// token signed with signingKey and are checked by OpenSigned.
func NewLocalStorage(basePath, baseURL string, signingKey []byte) (*LocalStorage, error) {
	if len(signingKey) == 0 {
		return nil, errors.New("local storage signing key is required")
	}

	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}

	// Create base directory if not exists
	if err := os.MkdirAll(absBase, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: absBase,
		baseURL:  strings.TrimRight(baseURL, "/"),
		signer:   jwtauth.New("HS256", signingKey, nil),
	}, nil
}

// resolve maps a storage key to a file under basePath, rejecting traversal.
func (s *LocalStorage) resolve(key string) (string, string, error) {
	cleanKey := path.Clean("/" + filepath.ToSlash(key))[1:]
	if cleanKey == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(cleanKey))
	rel, err := filepath.Rel(s.basePath, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return cleanKey, fullPath, nil
}

func (s *LocalStorage) Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error) {
	cleanKey, fullPath, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return cleanKey, nil
}

func (s *LocalStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	_, fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	_, fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetURL returns a link under baseURL that stays valid for expiry.
func (s *LocalStorage) GetURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	cleanKey, _, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	claims := map[string]interface{}{
		"sub":  cleanKey,
		"type": linkTokenType,
	}
	jwtauth.SetExpiry(claims, time.Now().Add(expiry))

	_, token, err := s.signer.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign link for %s: %w", cleanKey, err)
	}
	return s.baseURL + "/" + cleanKey + "?" + url.Values{"token": {token}}.Encode(), nil
}

// OpenSigned opens the regular file behind a link produced by GetURL. The caller
// closes the file. Returns ErrInvalidSignature for a missing, expired or foreign
// token and ErrFileNotFound for directories.
func (s *LocalStorage) OpenSigned(key, token string) (*os.File, fs.FileInfo, error) {
	cleanKey, fullPath, err := s.resolve(key)
	if err != nil {
		return nil, nil, err
	}

	if token == "" {
		return nil, nil, ErrInvalidSignature
	}
	verified, err := jwtauth.VerifyToken(s.signer, token)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	tokenType, _ := verified.PrivateClaims()["type"].(string)
	if tokenType != linkTokenType || verified.Subject() != cleanKey {
		return nil, nil, ErrInvalidSignature
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, cleanKey)
		}
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		file.Close()
		return nil, nil, fmt.Errorf("%w: %s", ErrFileNotFound, cleanKey)
	}
	return file, info, nil
}

func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, fullPath, err := s.resolve(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
