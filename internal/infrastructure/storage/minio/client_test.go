package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/PolyGraph-Intelligence/internal/config"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/PolyGraph-Intelligence/internal/infrastructure/storage/record"
	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/common"
)

type MockMinIOAPI struct {
	mock.Mock
}

func (m *MockMinIOAPI) ListBuckets(ctx context.Context) ([]minio.BucketInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]minio.BucketInfo), args.Error(1)
}

func (m *MockMinIOAPI) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	args := m.Called(ctx, bucketName)
	return args.Bool(0), args.Error(1)
}

func (m *MockMinIOAPI) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	args := m.Called(ctx, bucketName, opts)
	return args.Error(0)
}

func (m *MockMinIOAPI) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(ctx, bucketName, opts)
	return args.Get(0).(<-chan minio.ObjectInfo)
}

func (m *MockMinIOAPI) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, opts)
	return args.Get(0).(minio.UploadInfo), args.Error(1)
}

func (m *MockMinIOAPI) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucketName, objectName, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func objectChan(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

type ClientTestSuite struct {
	suite.Suite
	api    *MockMinIOAPI
	client *MinIOClient
	store  *RecordStore
	log    logging.Logger
}

func (s *ClientTestSuite) SetupTest() {
	s.api = new(MockMinIOAPI)
	s.log = logging.NewNopLogger()
	s.client = NewMinIOClientWithAPI(s.api, config.MinIOConfig{Bucket: "polyhedra"}, s.log)
	s.store = NewRecordStore(s.client, "/datasets/raw/", s.log)
}

func (s *ClientTestSuite) TestApplyDefaults() {
	c := NewMinIOClientWithAPI(s.api, config.MinIOConfig{}, nil)
	assert.Equal(s.T(), config.DefaultMinIOBucket, c.Bucket())
	assert.Equal(s.T(), "us-east-1", c.config.Region)
}

func (s *ClientTestSuite) TestEnsureBucket_Creates() {
	s.api.On("BucketExists", mock.Anything, "polyhedra").Return(false, nil)
	s.api.On("MakeBucket", mock.Anything, "polyhedra", mock.Anything).Return(nil)

	require.NoError(s.T(), s.client.EnsureBucket(context.Background()))
	s.api.AssertExpectations(s.T())
}

func (s *ClientTestSuite) TestEnsureBucket_Exists() {
	s.api.On("BucketExists", mock.Anything, "polyhedra").Return(true, nil)

	require.NoError(s.T(), s.client.EnsureBucket(context.Background()))
	s.api.AssertNotCalled(s.T(), "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ClientTestSuite) TestHealthCheck() {
	s.api.On("ListBuckets", mock.Anything).Return([]minio.BucketInfo{{Name: "polyhedra"}}, nil).Once()
	s.api.On("BucketExists", mock.Anything, "polyhedra").Return(true, nil).Once()
	assert.Equal(s.T(), common.HealthUp, s.client.HealthCheck(context.Background()).Status)

	s.api.On("ListBuckets", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	h := s.client.HealthCheck(context.Background())
	assert.Equal(s.T(), common.HealthDown, h.Status)
	assert.Contains(s.T(), h.Message, "connection refused")

	require.NoError(s.T(), s.client.Close())
	assert.Equal(s.T(), common.HealthDown, s.client.HealthCheck(context.Background()).Status)
}

func (s *ClientTestSuite) TestList() {
	s.api.On("ListObjects", mock.Anything, "polyhedra", minio.ListObjectsOptions{Prefix: "datasets/raw/"}).
		Return(objectChan("datasets/raw/b.json", "datasets/raw/a.json", "datasets/raw/readme.md", "datasets/raw/sub/c.json"))

	ids, err := s.store.List(context.Background())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"a", "b"}, ids)
}

func (s *ClientTestSuite) TestList_Error() {
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: errors.New("access denied")}
	close(ch)
	s.api.On("ListObjects", mock.Anything, "polyhedra", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	_, err := s.store.List(context.Background())
	assert.True(s.T(), pkgerrors.IsCode(err, pkgerrors.ErrCodeRecordRead))
}

func (s *ClientTestSuite) TestLoad() {
	body := io.NopCloser(bytes.NewReader([]byte(`{"vertices": [[0,0,0]]}`)))
	s.api.On("GetObject", mock.Anything, "polyhedra", "datasets/raw/cube.json", mock.Anything).Return(body, nil)

	r, err := s.store.Load(context.Background(), "cube")
	require.NoError(s.T(), err)
	vs, err := r.Vertices()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), [][3]float64{{0, 0, 0}}, vs)
}

func (s *ClientTestSuite) TestLoad_Errors() {
	s.api.On("GetObject", mock.Anything, "polyhedra", "datasets/raw/missing.json", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
	s.api.On("GetObject", mock.Anything, "polyhedra", "datasets/raw/bad.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("{"))), nil)
	s.api.On("GetObject", mock.Anything, "polyhedra", "datasets/raw/down.json", mock.Anything).
		Return(nil, errors.New("timeout"))

	_, err := s.store.Load(context.Background(), "missing")
	assert.True(s.T(), pkgerrors.IsNotFound(err))

	_, err = s.store.Load(context.Background(), "bad")
	assert.True(s.T(), pkgerrors.IsCode(err, pkgerrors.ErrCodeRecordCorrupt))

	_, err = s.store.Load(context.Background(), "down")
	assert.True(s.T(), pkgerrors.IsCode(err, pkgerrors.ErrCodeRecordRead))
}

func (s *ClientTestSuite) TestSave() {
	r, err := record.NewWithVertices([][3]float64{{1, 2, 3}})
	require.NoError(s.T(), err)
	want := r.Bytes()

	s.api.On("PutObject", mock.Anything, "polyhedra", "datasets/raw/cube.json", mock.Anything, int64(len(want)),
		minio.PutObjectOptions{ContentType: "application/json"}).
		Run(func(args mock.Arguments) {
			got, err := io.ReadAll(args.Get(3).(io.Reader))
			require.NoError(s.T(), err)
			assert.Equal(s.T(), string(want), string(got))
		}).
		Return(minio.UploadInfo{ETag: "etag"}, nil)

	require.NoError(s.T(), s.store.Save(context.Background(), "cube", r))
	s.api.AssertExpectations(s.T())
}

func (s *ClientTestSuite) TestSave_Error() {
	s.api.On("PutObject", mock.Anything, "polyhedra", "datasets/raw/cube.json", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("quota exceeded"))

	err := s.store.Save(context.Background(), "cube", record.New())
	assert.True(s.T(), pkgerrors.IsCode(err, pkgerrors.ErrCodeRecordWrite))
}

func (s *ClientTestSuite) TestClosed() {
	require.NoError(s.T(), s.client.Close())
	_, err := s.store.List(context.Background())
	assert.ErrorIs(s.T(), err, ErrMinIOClientClosed)
}

func (s *ClientTestSuite) TestLocation() {
	assert.Equal(s.T(), "s3://polyhedra/datasets/raw/cube.json", s.store.Location("cube"))
	assert.Equal(s.T(), "s3://polyhedra/cube.json", NewRecordStore(s.client, "", nil).Location("cube"))
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

//Personal.AI order the ending
