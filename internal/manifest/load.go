package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/graphvalidator/internal/ctxlog"
)

// Decoder is the interface for a format-specific manifest decoder.
type Decoder interface {
	// Decode translates the raw manifest source into the format-agnostic
	// model. path is used for diagnostics only.
	Decode(ctx context.Context, path string, src []byte, vars Variables) (*Module, error)
}

// decoders maps a file extension to the decoder handling it.
var decoders = map[string]Decoder{
	".hcl":  NewHCLDecoder(),
	".yaml": NewYAMLDecoder(),
	".yml":  NewYAMLDecoder(),
}

// Extensions returns the manifest file extensions Load understands.
func Extensions() []string {
	return []string{".hcl", ".yaml", ".yml"}
}

// Load reads the manifest at path, decodes it with the decoder matching its
// extension and validates the result. Errors from reading the file are
// wrapped so that errors.Is(err, fs.ErrNotExist) still holds.
func Load(ctx context.Context, path string, vars Variables) (*Module, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading manifest.", "path", path)

	ext := strings.ToLower(filepath.Ext(path))
	decoder, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnsupportedFormat, ext, strings.Join(Extensions(), ", "))
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := decoder.Decode(ctx, path, src, vars)
	if err != nil {
		return nil, err
	}
	m.SourcePath = path

	if err := Validate(m); err != nil {
		return nil, err
	}

	logger.Debug("Manifest loaded.", "module", m.Name, "exports", m.ExportNames())
	return m, nil
}
