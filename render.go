package pubview

import (
	"bytes"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
// The component is rendered into a buffer first so a failure still lets the
// error handler answer with a proper 500 page.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	var buf bytes.Buffer
	if err := cmp.Render(c.Request().Context(), &buf); err != nil {
		return err
	}
	return c.HTMLBlob(code, buf.Bytes())
}

// renderView renders cmp under a tracing span and counts it as view.
func (a *App) renderView(c echo.Context, code int, view string, cmp templ.Component) error {
	ctx, span := tracer().Start(c.Request().Context(), "render "+view)
	defer span.End()
	span.SetAttributes(attribute.String("http.path", c.Request().URL.Path))
	c.SetRequest(c.Request().WithContext(ctx))

	if err := RenderStatus(c, code, cmp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		a.metrics.renderErrors.WithLabelValues(view).Inc()
		return err
	}
	a.metrics.renders.WithLabelValues(view).Inc()
	return nil
}
