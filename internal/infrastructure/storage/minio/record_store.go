package minio

import (
	"bytes"
	"context"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/storage/record"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

const recordExt = ".json"

// RecordStore keeps records as <prefix>/<id>.json objects in one bucket.
type RecordStore struct {
	client *MinIOClient
	prefix string
	logger logging.Logger
}

// NewRecordStore returns a record.Store over the objects under prefix.
func NewRecordStore(client *MinIOClient, prefix string, log logging.Logger) *RecordStore {
	if log == nil {
		log = logging.NewNopLogger()
	}
	prefix = strings.Trim(prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &RecordStore{client: client, prefix: prefix, logger: log.Named("minio_record_store")}
}

func (s *RecordStore) key(id string) string {
	return s.prefix + id + recordExt
}

// Location returns the s3 URL of id.
func (s *RecordStore) Location(id string) string {
	return "s3://" + path.Join(s.client.Bucket(), s.key(id))
}

// List returns the ids directly under the prefix in lexicographic order.
func (s *RecordStore) List(ctx context.Context) ([]string, error) {
	if s.client.isClosed() {
		return nil, ErrMinIOClientClosed
	}
	objects := s.client.GetClient().ListObjects(ctx, s.client.Bucket(), minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: false,
	})

	ids := []string{}
	for obj := range objects {
		if obj.Err != nil {
			return nil, errors.Wrap(obj.Err, errors.ErrCodeRecordRead, "failed to list records").WithDetail(s.prefix)
		}
		name := strings.TrimPrefix(obj.Key, s.prefix)
		if strings.Contains(name, "/") || !strings.HasSuffix(name, recordExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, recordExt))
	}
	sort.Strings(ids)
	return ids, nil
}

// Load downloads and parses the record of id.
func (s *RecordStore) Load(ctx context.Context, id string) (*record.Record, error) {
	if s.client.isClosed() {
		return nil, ErrMinIOClientClosed
	}
	key := s.key(id)
	obj, err := s.client.GetClient().GetObject(ctx, s.client.Bucket(), key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.readError(err, id, key)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.readError(err, id, key)
	}
	r, err := record.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRecordCorrupt, "corrupt record").WithDetail(key)
	}
	return r, nil
}

func (s *RecordStore) readError(err error, id, key string) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return errors.Newf(errors.ErrCodeNotFound, "record %q not found", id).WithDetail(key)
	}
	return errors.Wrap(err, errors.ErrCodeRecordRead, "failed to download record").WithDetail(key)
}

// Save uploads the rendered record, replacing any previous object.
func (s *RecordStore) Save(ctx context.Context, id string, r *record.Record) error {
	if s.client.isClosed() {
		return ErrMinIOClientClosed
	}
	key := s.key(id)
	data := r.Bytes()
	info, err := s.client.GetClient().PutObject(ctx, s.client.Bucket(), key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeRecordWrite, "failed to upload record").WithDetail(key)
	}
	s.logger.Debug("record uploaded", logging.RecordID(id), logging.String("key", key), logging.String("etag", info.ETag))
	return nil
}

var _ record.Store = (*RecordStore)(nil)

//Personal.AI order the ending
