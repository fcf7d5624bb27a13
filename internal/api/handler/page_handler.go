package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const appShell = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Real Estate Admin</title>
</head>
<body>
  <div id="app"></div>
  <script type="module" src="/assets/app.js"></script>
</body>
</html>
`

// PageHandler serves the single-page application shell. Routing between
// pages happens client side; the server's job is only to gate access via
// the edge middleware and hand out the same shell for every page.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Shell(c echo.Context) error {
	return c.HTML(http.StatusOK, appShell)
}
