package handlers

import (
	"fmt"
	"net/http"

	"github.com/dustward/campbase/pkg/api/errors"
	"github.com/dustward/campbase/pkg/export"
	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles spreadsheet download endpoints
type ExportHandler struct {
	export *export.Service
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *export.Service) *ExportHandler {
	return &ExportHandler{export: exportService}
}

// DuesLedger streams the dues ledger workbook (admin).
func (h *ExportHandler) DuesLedger(c echo.Context) error {
	data, err := h.export.DuesLedger(c.Request().Context())
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return h.attachment(c, export.Filename("dues-ledger"), data)
}

// Roster streams the member roster workbook (admin).
func (h *ExportHandler) Roster(c echo.Context) error {
	data, err := h.export.Roster(c.Request().Context())
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return h.attachment(c, export.Filename("roster"), data)
}

func (h *ExportHandler) attachment(c echo.Context, filename string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, xlsxContentType, data)
}
