package record

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

const fileExt = ".json"

// FileStore keeps one <id>.json file per record in a directory.
type FileStore struct {
	dir    string
	logger logging.Logger
}

// NewFileStore returns a store over dir.  The directory is created on the
// first Save, so a missing output directory is not an error.
func NewFileStore(dir string, logger logging.Logger) *FileStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &FileStore{dir: dir, logger: logger.Named("record_store")}
}

// Dir returns the backing directory.
func (s *FileStore) Dir() string { return s.dir }

// Location returns the file path of id.
func (s *FileStore) Location(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}

// List returns the ids of every *.json file in lexicographic order.  A
// missing directory lists as empty.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordRead, "failed to list records").WithDetail(s.dir)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(ids)
	return ids, nil
}

// Load reads and parses the record of id.
func (s *FileStore) Load(ctx context.Context, id string) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := s.Location(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pkgerrors.Newf(pkgerrors.ErrCodeNotFound, "record %q not found", id).WithDetail(path)
		}
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordRead, "failed to read record").WithDetail(path)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordCorrupt, "corrupt record").WithDetail(path)
	}
	return r, nil
}

// Save writes the record through a temporary file in the same directory and
// renames it into place, so readers never see a partial file.
func (s *FileStore) Save(ctx context.Context, id string, r *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordWrite, "failed to create output directory").WithDetail(s.dir)
	}

	path := s.Location(id)
	tmp, err := os.CreateTemp(s.dir, "."+id+".*.tmp")
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordWrite, "failed to create temp file").WithDetail(path)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			s.logger.Warn("failed to remove temp file", logging.String("path", tmpName), logging.Err(rmErr))
		}
	}

	if _, err := tmp.Write(r.Bytes()); err != nil {
		_ = tmp.Close()
		cleanup()
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordWrite, "failed to write record").WithDetail(path)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordWrite, "failed to close record").WithDetail(path)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordWrite, "failed to set record mode").WithDetail(path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return pkgerrors.Wrap(err, pkgerrors.ErrCodeRecordWrite, "failed to move record into place").WithDetail(path)
	}

	s.logger.Debug("record saved", logging.RecordID(id), logging.String("path", path))
	return nil
}

var _ Store = (*FileStore)(nil)

//Personal.AI order the ending
