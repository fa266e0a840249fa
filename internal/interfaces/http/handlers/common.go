// Package handlers implements the gin handlers of the dataset API.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/PolyGraph-Intelligence/pkg/types/common"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// parsePagination reads page and page_size on top of the defaults.
func parsePagination(c *gin.Context) (common.Pagination, error) {
	p := common.DefaultPagination()
	params := []struct {
		name string
		dst  *int
	}{{"page", &p.Page}, {"page_size", &p.PageSize}}
	for _, q := range params {
		raw, ok := c.GetQuery(q.name)
		if !ok {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return p, pkgerrors.Newf(pkgerrors.ErrCodeBadRequest, "%s %q is not an integer", q.name, raw)
		}
		*q.dst = v
	}
	return p, p.Validate()
}

// writeAppError maps err to its HTTP status.  Server-side failures are
// masked.
func writeAppError(c *gin.Context, err error) {
	code := pkgerrors.GetCode(err)
	status := pkgerrors.HTTPStatusForCode(code)
	_ = c.Error(err)

	if status >= http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, common.ErrorDetail{
			Code:    string(pkgerrors.ErrCodeInternal),
			Message: "internal server error",
		})
		return
	}
	resp := common.ErrorDetail{Code: string(code), Message: err.Error()}
	var ae *pkgerrors.AppError
	if errors.As(err, &ae) {
		resp.Message = ae.Message
		if ae.Detail != "" {
			resp.Details = map[string]interface{}{"detail": ae.Detail}
		}
	}
	c.AbortWithStatusJSON(status, resp)
}

//Personal.AI order the ending
