package session

import (
	"crypto/subtle"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arkade-games/adastra-server/internal/dependencies/random"
	"github.com/arkade-games/adastra-server/internal/model"
)

// SysopToken is the explicit capability replacing the old "trust anything
// from localhost" rule for the sysop console. The server keeps the token in
// a file readable only by its own user; any process that can read the file
// is, by definition, on the server host with the right privileges. Peer
// addresses are never consulted.
type SysopToken struct {
	value string
}

// LoadOrCreateSysopToken reads the token file, generating a fresh token
// with 0600 permissions when the file does not exist yet
func LoadOrCreateSysopToken(path string, rnd random.Random) (*SysopToken, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		token := strings.TrimSpace(string(data))
		if token == "" {
			return nil, fmt.Errorf("sysop token file %s is empty", path)
		}
		return &SysopToken{value: token}, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read sysop token: %w", err)
	}

	token := rnd.String(model.TokenLength, hexAlphabet)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create sysop token dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("write sysop token: %w", err)
	}
	return &SysopToken{value: token}, nil
}

// NewSysopToken wraps an already-known token value (used by tests)
func NewSysopToken(value string) *SysopToken {
	return &SysopToken{value: value}
}

// Matches reports whether the presented value equals the token, in
// constant time
func (t *SysopToken) Matches(presented string) bool {
	if t == nil || t.value == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(t.value), []byte(presented)) == 1
}
