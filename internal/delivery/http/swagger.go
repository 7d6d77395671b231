package http

import (
	"net/http"

	_ "fate-server/internal/delivery/http/docs"

	"github.com/labstack/echo/v4"
	swaggerFiles "github.com/swaggo/files"
	"github.com/swaggo/swag"
)

const swaggerIndex = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Fate Server API</title>
  <link rel="stylesheet" type="text/css" href="./swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="./swagger-ui-bundle.js" charset="UTF-8"></script>
<script src="./swagger-ui-standalone-preset.js" charset="UTF-8"></script>
<script>
window.onload = function () {
  window.ui = SwaggerUIBundle({
    url: "doc.json",
    dom_id: "#swagger-ui",
    deepLinking: true,
    presets: [SwaggerUIBundle.presets.apis, SwaggerUIStandalonePreset],
    layout: "StandaloneLayout"
  });
};
</script>
</body>
</html>`

// RegisterDocs публикует OpenAPI описание и Swagger UI под /swagger.
func RegisterDocs(e *echo.Echo) {
	e.GET("/swagger/doc.json", func(c echo.Context) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, APIError{Message: "Internal server error"})
		}
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(doc))
	})
	e.GET("/swagger/index.html", func(c echo.Context) error {
		return c.HTML(http.StatusOK, swaggerIndex)
	})
	e.GET("/swagger", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	e.GET("/swagger/*", echo.WrapHandler(http.StripPrefix("/swagger", swaggerFiles.Handler)))
}
