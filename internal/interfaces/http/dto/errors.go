package dto

import "net/http"

// Error codes surfaced by the HTTP layer itself
const (
	ErrCodeInvalidJSON = "INVALID_JSON"
	ErrCodeInternal    = "INTERNAL"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeInternal:    http.StatusInternalServerError,

	"NOT_FOUND":            http.StatusNotFound,
	"INVALID_INPUT":        http.StatusBadRequest,
	"INVALID_TITLE":        http.StatusBadRequest,
	"INVALID_PRICE":        http.StatusBadRequest,
	"EMPTY_ORDER":          http.StatusBadRequest,
	"INDEX_OUT_OF_RANGE":   http.StatusBadRequest,
	"DUPLICATE_PRODUCT_ID": http.StatusBadRequest,
	"INVALID_STATE":        http.StatusConflict,
	"FETCH_FAILED":         http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for a domain error code,
// defaulting to 500 for codes the layer does not know.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
