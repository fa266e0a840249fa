// Package errors_test exercises the AppError type, its factories and the
// error-chain classification helpers.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// New / Wrap
// ─────────────────────────────────────────────────────────────────────────────

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"degenerate hull", errors.ErrCodeDegenerateHull, "all vertices coplanar"},
		{"encoding config", errors.ErrCodeEncodingConfig, "bins must be positive"},
		{"record read", errors.ErrCodeRecordRead, "permission denied"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
			assert.Contains(t, ae.Stack, "errors_test.go")
		})
	}
}

func TestNewf(t *testing.T) {
	ae := errors.Newf(errors.ErrCodeInvalidVertices, "need at least %d vertices, got %d", 4, 3)
	assert.Equal(t, "need at least 4 vertices, got 3", ae.Message)
}

func TestWrap_NilErrReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrCodeInternal, "should not matter"))
}

func TestWrap_CauseChainIsPreserved(t *testing.T) {
	root := stderrors.New("disk full")
	ae := errors.Wrap(root, errors.ErrCodeRecordWrite, "save failed")

	require.NotNil(t, ae)
	assert.True(t, stderrors.Is(ae, root))
	assert.Equal(t, root, stderrors.Unwrap(ae))
}

func TestWrap_UnknownCodePreservesOriginal(t *testing.T) {
	inner := errors.New(errors.ErrCodeZeroAreaFace, "face 3")
	outer := errors.Wrap(inner, errors.ErrCodeUnknown, "extract failed")

	assert.Equal(t, errors.ErrCodeZeroAreaFace, outer.Code)
}

func TestError_Format(t *testing.T) {
	cases := []struct {
		name string
		err  *errors.AppError
		want string
	}{
		{"bare", errors.New(errors.ErrCodeDegenerateHull, "coplanar"), "[GEO_001] coplanar"},
		{"detail", errors.New(errors.ErrCodeRecordRead, "read").WithDetail("id=a"), "[IO_001] read: id=a"},
		{"cause", errors.Wrap(fmt.Errorf("boom"), errors.ErrCodeRecordWrite, "write"), "[IO_003] write: boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestWithDetail_NilSafe(t *testing.T) {
	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
	assert.Nil(t, ae.WithCause(stderrors.New("x")))
}

func TestWithDetail_DoesNotMutateReceiver(t *testing.T) {
	base := errors.New(errors.ErrCodeRecordCorrupt, "bad json")
	withDetail := base.WithDetail("id=cube")
	assert.Empty(t, base.Detail)
	assert.Equal(t, "id=cube", withDetail.Detail)
}

// ─────────────────────────────────────────────────────────────────────────────
// Classification helpers
// ─────────────────────────────────────────────────────────────────────────────

func TestClassification(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		err      error
		geometry bool
		encoding bool
		io       bool
		reason   string
	}{
		{"nil", nil, false, false, false, "ok"},
		{"hull", errors.New(errors.ErrCodeDegenerateHull, "x"), true, false, false, "geometry"},
		{"zero area", errors.New(errors.ErrCodeZeroAreaFace, "x"), true, false, false, "geometry"},
		{"vertices", errors.New(errors.ErrCodeInvalidVertices, "x"), true, false, false, "geometry"},
		{"encoding", errors.New(errors.ErrCodeEncodingConfig, "x"), false, true, false, "encoding_config"},
		{"read", errors.New(errors.ErrCodeRecordRead, "x"), false, false, true, "io"},
		{"corrupt wrapped", fmt.Errorf("ctx: %w", errors.New(errors.ErrCodeRecordCorrupt, "x")), false, false, true, "io"},
		{"foreign", stderrors.New("plain"), false, false, false, "internal"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.geometry, errors.IsGeometryError(tc.err))
			assert.Equal(t, tc.encoding, errors.IsEncodingConfigError(tc.err))
			assert.Equal(t, tc.io, errors.IsIOError(tc.err))
			assert.Equal(t, tc.reason, errors.Reason(tc.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, errors.IsNotFound(errors.NotFound("record cube")))
	assert.True(t, errors.IsNotFound(errors.New(errors.ErrCodeCoordinationUnknownSymbol, "X:99")))
	assert.False(t, errors.IsNotFound(errors.Internal("boom")))
	assert.False(t, errors.IsNotFound(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.ErrCodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.ErrCodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrCodeBadRequest, errors.GetCode(errors.InvalidParam("idx")))
	assert.Equal(t, errors.ErrCodeRecordRead,
		errors.GetCode(fmt.Errorf("wrapped: %w", errors.New(errors.ErrCodeRecordRead, "x"))))
}

//Personal.AI order the ending
