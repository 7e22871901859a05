package ginmw

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shapekit/shapekit"
	"github.com/shapekit/shapekit/ast"
	"github.com/shapekit/shapekit/middleware"
	"github.com/shapekit/shapekit/source"
)

// ValidateJSON reads the request body, decodes it against node, and
// either stores the decoded value in the request context or responds
// with a 400 plus the rejected diagnostics.
func ValidateJSON(node ast.Node, opts ...ast.ParseOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := source.JSONReader(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		res := shapekit.Decode(node, raw, opts...)
		if res.IsFailure() {
			c.JSON(http.StatusBadRequest, middleware.ErrorPayload(res.Errors))
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), res.Value))
		c.Next()
	}
}

// GetDecoded fetches the value ValidateJSON stored on c.
func GetDecoded(c *gin.Context) (any, bool) {
	return middleware.DecodedFromContext(c.Request.Context())
}
