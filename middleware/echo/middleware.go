package echomw

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shapekit/shapekit"
	"github.com/shapekit/shapekit/ast"
	"github.com/shapekit/shapekit/middleware"
	"github.com/shapekit/shapekit/source"
)

// ValidateJSON reads the request body, decodes it against node, and
// either stores the decoded value in the request context or responds
// with a 400 plus the rejected diagnostics.
func ValidateJSON(node ast.Node, opts ...ast.ParseOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := source.JSONReader(c.Request().Body)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
			}
			res := shapekit.Decode(node, raw, opts...)
			if res.IsFailure() {
				return c.JSON(http.StatusBadRequest, middleware.ErrorPayload(res.Errors))
			}
			ctx := middleware.ContextWithDecoded(c.Request().Context(), res.Value)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetDecoded fetches the value ValidateJSON stored on c.
func GetDecoded(c echo.Context) (any, bool) {
	return middleware.DecodedFromContext(c.Request().Context())
}
