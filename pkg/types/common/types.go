// Package common holds plain data types shared by every layer: pagination,
// error bodies and component health.
package common

import (
	"time"

	pkgerrors "github.com/turtacn/PolyGraph-Intelligence/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Pagination
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultPageSize applies when a request names no page size.
	DefaultPageSize = 20
	// MaxPageSize caps Pagination.PageSize.
	MaxPageSize = 100
)

// Pagination defines parameters for paginated requests.
type Pagination struct {
	Page     int   `json:"page" form:"page"`
	PageSize int   `json:"page_size" form:"page_size"`
	Total    int64 `json:"total"`
}

// DefaultPagination is the first page at DefaultPageSize.
func DefaultPagination() Pagination {
	return Pagination{Page: 1, PageSize: DefaultPageSize}
}

// Validate checks if pagination parameters are within valid bounds.
func (p Pagination) Validate() error {
	if p.Page < 1 {
		return pkgerrors.New(pkgerrors.ErrCodeValidation, "page must be >= 1")
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		return pkgerrors.Newf(pkgerrors.ErrCodeValidation, "page_size must be between 1 and %d", MaxPageSize)
	}
	return nil
}

// Offset returns the index of the first item on the page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PaginatedResult is a page of items with its pagination metadata.
type PaginatedResult[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Paginate cuts the page p out of all.  Pages past the end are empty, never
// nil.
func Paginate[T any](all []T, p Pagination) PaginatedResult[T] {
	p.Total = int64(len(all))
	items := []T{}
	if start := p.Offset(); start < len(all) {
		end := start + p.PageSize
		if end > len(all) {
			end = len(all)
		}
		items = all[start:end]
	}
	return PaginatedResult[T]{Items: items, Pagination: p}
}

// ─────────────────────────────────────────────────────────────────────────────
// Errors
// ─────────────────────────────────────────────────────────────────────────────

// ErrorDetail is the body of every non-2xx API answer.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Health
// ─────────────────────────────────────────────────────────────────────────────

// HealthStatus indicates the health of a component or service.
type HealthStatus string

const (
	HealthUp       HealthStatus = "up"
	HealthDown     HealthStatus = "down"
	HealthDegraded HealthStatus = "degraded"
)

// ComponentHealth provides health information for a specific component.
type ComponentHealth struct {
	Name    string        `json:"name"`
	Status  HealthStatus  `json:"status"`
	Latency time.Duration `json:"latency"`
	Message string        `json:"message,omitempty"`
}

//Personal.AI order the ending
