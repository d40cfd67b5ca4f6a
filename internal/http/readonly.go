package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CodeReadOnly marks writes rejected by the read-only middleware.
const CodeReadOnly = "read_only"

// readOnlyAllowed lists paths that accept non-GET methods in read-only mode.
// Exports read the library and write only to the export directory.
var readOnlyAllowed = []string{
	"/api/export",
}

// ReadOnlyMiddleware rejects requests that would change the library.
// GET, HEAD and OPTIONS always pass.
func ReadOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		for _, allowed := range readOnlyAllowed {
			if strings.HasPrefix(c.Request.URL.Path, allowed) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Error: "the library is read-only",
			Code:  CodeReadOnly,
		})
	}
}
