package descriptor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	domain "github.com/oshokin/version-props/internal/domain/versioning"
)

// DefaultFilename is the conventional name of the descriptor file.
const DefaultFilename = "version.json"

// ErrNotFound is returned when the descriptor file does not exist.
var ErrNotFound = errors.New("version descriptor not found")

// Repository defines read access to the version descriptor.
type Repository interface {
	Load(ctx context.Context) (domain.Descriptor, error)
}

// FileRepository reads the descriptor from a JSON file on disk.
// Comments and trailing commas are allowed.
type FileRepository struct {
	// path is the filesystem location of the descriptor.
	path string
}

// fileDescriptor is the on-disk shape of the descriptor.
type fileDescriptor struct {
	Major      uint64  `json:"Major"`
	Minor      uint64  `json:"Minor"`
	Patch      uint64  `json:"Patch"`
	PreRelease *string `json:"PreRelease"`
}

// NewFileRepository creates a repository reading the descriptor at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads and decodes the descriptor.
// A file without content (or holding JSON null) yields domain.DefaultDescriptor.
func (r *FileRepository) Load(_ context.Context) (domain.Descriptor, error) {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Descriptor{}, fmt.Errorf("%s: %w", r.path, ErrNotFound)
		}

		return domain.Descriptor{}, fmt.Errorf("read version descriptor: %w", err)
	}

	return Decode(contents)
}

// Decode parses descriptor contents.
func Decode(contents []byte) (domain.Descriptor, error) {
	stripped := bytes.TrimSpace(jsonc.ToJSON(contents))
	if len(stripped) == 0 || bytes.Equal(stripped, []byte("null")) {
		return domain.DefaultDescriptor(), nil
	}

	var raw fileDescriptor
	if err := json.Unmarshal(stripped, &raw); err != nil {
		return domain.Descriptor{}, fmt.Errorf("decode version descriptor: %w", err)
	}

	return toDomain(&raw), nil
}

// toDomain converts the file representation into the domain Descriptor.
func toDomain(raw *fileDescriptor) domain.Descriptor {
	d := domain.Descriptor{
		Major: raw.Major,
		Minor: raw.Minor,
		Patch: raw.Patch,
	}

	if raw.PreRelease != nil {
		d.PreRelease = *raw.PreRelease
	}

	return d
}
