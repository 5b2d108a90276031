package client

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/VinayakFrontend/task-manager-app/models"
)

// Claims is the decoded token payload the UI role-gates on.
type Claims struct {
	User struct {
		ID   string      `json:"id"`
		Role models.Role `json:"role"`
	} `json:"user"`
	Exp int64 `json:"exp"`
}

// Session holds the raw session token and persists it to a local file, the
// terminal equivalent of the browser's localStorage. The server is the only
// party that verifies the token; Claims just decodes the payload segment.
type Session struct {
	path  string
	token string
}

// NewSession loads any previously stored token from path.
func NewSession(path string) *Session {
	s := &Session{path: path}
	if data, err := os.ReadFile(path); err == nil {
		s.token = strings.TrimSpace(string(data))
	}
	return s
}

func (s *Session) Token() string { return s.token }

// SetToken stores the token in memory and on disk.
func (s *Session) SetToken(token string) error {
	s.token = token
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear logs out: the token is forgotten locally. The server keeps no
// revocation list, so the token itself stays valid until it expires.
func (s *Session) Clear() error {
	s.token = ""
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Claims decodes the token payload without verifying the signature.
func (s *Session) Claims() Claims {
	var c Claims
	parts := strings.Split(s.token, ".")
	if len(parts) != 3 {
		return c
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return c
	}
	_ = json.Unmarshal(payload, &c)
	return c
}

// Expired reports whether the stored token is absent or past its expiry.
func (s *Session) Expired() bool {
	if s.token == "" {
		return true
	}
	c := s.Claims()
	if c.Exp == 0 {
		return true
	}
	return time.Now().Unix() >= c.Exp
}

// IsAdmin reports whether the stored token carries the admin role.
func (s *Session) IsAdmin() bool {
	return s.Claims().User.Role == models.RoleAdmin
}

// UserID returns the caller's id from the stored token.
func (s *Session) UserID() string {
	return s.Claims().User.ID
}
