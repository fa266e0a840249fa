package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeUnknown            ErrorCode = ""
	ErrCodeOK                 ErrorCode = "OK"
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeMessageQueueError  ErrorCode = "COMMON_014"
	ErrCodeConfigError        ErrorCode = "COMMON_017"
)

// Geometry Error Codes
const (
	ErrCodeDegenerateHull  ErrorCode = "GEO_001"
	ErrCodeZeroAreaFace    ErrorCode = "GEO_002"
	ErrCodeInvalidVertices ErrorCode = "GEO_003"
)

// Encoding Error Codes
const (
	ErrCodeEncodingConfig ErrorCode = "ENC_001"
)

// Record I/O Error Codes
const (
	ErrCodeRecordRead    ErrorCode = "IO_001"
	ErrCodeRecordCorrupt ErrorCode = "IO_002"
	ErrCodeRecordWrite   ErrorCode = "IO_003"
)

// Coordination registry Error Codes
const (
	ErrCodeCoordinationNotLoaded     ErrorCode = "CRD_001"
	ErrCodeCoordinationUnknownSymbol ErrorCode = "CRD_002"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeMessageQueueError:  http.StatusInternalServerError,
	ErrCodeConfigError:        http.StatusInternalServerError,

	ErrCodeDegenerateHull:  http.StatusUnprocessableEntity,
	ErrCodeZeroAreaFace:    http.StatusUnprocessableEntity,
	ErrCodeInvalidVertices: http.StatusBadRequest,

	ErrCodeEncodingConfig: http.StatusInternalServerError,

	ErrCodeRecordRead:    http.StatusInternalServerError,
	ErrCodeRecordCorrupt: http.StatusUnprocessableEntity,
	ErrCodeRecordWrite:   http.StatusInternalServerError,

	ErrCodeCoordinationNotLoaded:     http.StatusServiceUnavailable,
	ErrCodeCoordinationUnknownSymbol: http.StatusNotFound,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeMessageQueueError:  "message queue error",
	ErrCodeConfigError:        "invalid configuration",

	ErrCodeDegenerateHull:  "convex hull cannot be constructed",
	ErrCodeZeroAreaFace:    "face has zero area",
	ErrCodeInvalidVertices: "invalid polyhedron vertices",

	ErrCodeEncodingConfig: "inconsistent encoder configuration",

	ErrCodeRecordRead:    "failed to read record",
	ErrCodeRecordCorrupt: "record is corrupt",
	ErrCodeRecordWrite:   "failed to write record",

	ErrCodeCoordinationNotLoaded:     "coordination registry not loaded",
	ErrCodeCoordinationUnknownSymbol: "unknown coordination environment symbol",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 1 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

//Personal.AI order the ending
