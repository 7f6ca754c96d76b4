// Package repo loads locale bundles for warming
package repo

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"lingo/internal/core/locale"
	perr "lingo/internal/platform/errors"
)

// Bundle is one locale's message payloads split by load priority
type Bundle struct {
	Critical map[string]json.RawMessage `json:"critical"`
	Deferred map[string]json.RawMessage `json:"deferred"`
}

// Loader fetches the bundle for a locale
type Loader interface {
	Load(ctx context.Context, loc locale.Locale) (Bundle, error)
}

// FS loads bundles from <dir>/<locale>.json
type FS struct {
	dir string
}

// NewFS creates a filesystem bundle loader rooted at dir
func NewFS(dir string) *FS { return &FS{dir: dir} }

// Load reads and decodes the bundle file for loc
func (f *FS) Load(_ context.Context, loc locale.Locale) (Bundle, error) {
	path := filepath.Join(f.dir, string(loc)+".json")
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Bundle{}, perr.NotFoundf("no bundle for locale %q", string(loc))
		}
		return Bundle{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "read bundle %s", path)
	}
	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return Bundle{}, perr.Wrapf(err, perr.ErrorCodeJSON, "decode bundle %s", path)
	}
	return b, nil
}
