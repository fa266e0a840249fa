package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/PolyGraph-Intelligence/internal/application/dataset"
	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/common"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// DatasetReader is the read side of a featurized dataset.
type DatasetReader interface {
	Len() int
	Manifest() *dataset.Manifest
	Describe(ctx context.Context) (*dataset.Info, error)
	Get(ctx context.Context, idx int) (*dataset.Sample, error)
	FileName(idx int) (string, error)
}

// DatasetHandler serves samples by manifest index.
type DatasetHandler struct {
	ds DatasetReader
}

func NewDatasetHandler(ds DatasetReader) *DatasetHandler {
	return &DatasetHandler{ds: ds}
}

// RecordPage is one page of manifest ids.
type RecordPage = common.PaginatedResult[string]

// RecordResponse is one sample and where it is stored.
type RecordResponse struct {
	Index    int             `json:"index"`
	FileName string          `json:"file_name"`
	Sample   *dataset.Sample `json:"sample"`
}

// Describe handles GET /api/v1/dataset.
func (h *DatasetHandler) Describe(c *gin.Context) {
	info, err := h.ds.Describe(c.Request.Context())
	if err != nil {
		writeAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// ListRecords handles GET /api/v1/dataset/records.
func (h *DatasetHandler) ListRecords(c *gin.Context) {
	p, err := parsePagination(c)
	if err != nil {
		writeAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, common.Paginate(h.ds.Manifest().IDs(), p))
}

// GetRecord handles GET /api/v1/dataset/records/:idx.
func (h *DatasetHandler) GetRecord(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil {
		writeAppError(c, pkgerrors.Newf(pkgerrors.ErrCodeBadRequest, "index %q is not an integer", c.Param("idx")))
		return
	}
	sample, err := h.ds.Get(c.Request.Context(), idx)
	if err != nil {
		writeAppError(c, err)
		return
	}
	name, err := h.ds.FileName(idx)
	if err != nil {
		writeAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, RecordResponse{Index: idx, FileName: name, Sample: sample})
}

//Personal.AI order the ending
