package http

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotevault/internal/library"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"` // machine-readable error code
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error codes
const (
	CodeValidation   = "validation_failed"
	CodeUnknownBook  = "unknown_book"
	CodeNotFound     = "not_found"
	CodePersistence  = "persistence_failed"
	CodeInvalidInput = "invalid_input"
)

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeInvalidInput})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: CodeNotFound})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondStoreError maps library errors onto status codes:
// validation 400, unknown book 422, not found 404, anything else 500.
func respondStoreError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, library.ErrValidation), errors.Is(err, library.ErrInvalidTagPattern):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeValidation})
	case errors.Is(err, library.ErrUnknownBook):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: CodeUnknownBook})
	case errors.Is(err, library.ErrBookNotFound):
		respondNotFound(c, "book")
	case errors.Is(err, library.ErrQuoteNotFound):
		respondNotFound(c, "quote")
	case errors.Is(err, library.ErrNoQuotes):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: CodeNotFound})
	case errors.Is(err, library.ErrPersistence):
		log.Printf("Persistence error (%s): %v", context, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "change applied but could not be saved", Code: CodePersistence})
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseIDParam returns a non-blank identifier from the URL, or responds with
// 400 and returns false.
func parseIDParam(c *gin.Context, paramName string) (string, bool) {
	id := strings.TrimSpace(c.Param(paramName))
	if id == "" {
		respondBadRequest(c, "invalid "+paramName)
		return "", false
	}
	return id, true
}
