package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/nt-version/internal/api/grpc/kernel"
	"github.com/oshokin/nt-version/internal/config"
	"github.com/oshokin/nt-version/internal/domain/host"
)

// Repository defines persistence operations for a snapshot report.
type Repository interface {
	Load(ctx context.Context) (*host.Snapshot, error)
	Save(ctx context.Context, snapshot *host.Snapshot) error
}

// FileRepository persists a snapshot to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the report.
	path string
	// mu serializes access to the report file.
	mu sync.Mutex
}

// ErrNotFound is returned when the report file does not exist.
var ErrNotFound = errors.New("report not found")

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the report location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the snapshot from disk.
func (r *FileRepository) Load(_ context.Context) (*host.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read report file: %w", err)
	}

	message := new(structpb.Struct)
	if err = protojson.Unmarshal(contents, message); err != nil {
		return nil, fmt.Errorf("decode report file: %w", err)
	}

	snapshot, err := kernel.FromProto(message)
	if err != nil {
		return nil, fmt.Errorf("decode report file: %w", err)
	}

	return snapshot, nil
}

// Save writes the snapshot to disk, replacing any previous report.
func (r *FileRepository) Save(_ context.Context, snapshot *host.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	message, err := kernel.ToProto(snapshot)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	data, err := Marshal(message)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}

	return nil
}

// Marshal renders a snapshot Struct as indented protobuf JSON with a trailing newline.
func Marshal(message *structpb.Struct) ([]byte, error) {
	options := protojson.MarshalOptions{
		Multiline:       true,
		Indent:          "  ",
		EmitUnpopulated: true,
	}

	data, err := options.Marshal(message)
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}
