package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustward/campbase/pkg/api/errors"
	"github.com/dustward/campbase/pkg/assets"
	"github.com/dustward/campbase/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const maxPhotoSize = 5 << 20 // 5 MB

// AssetHandler handles camp inventory endpoints
type AssetHandler struct {
	assets    *assets.Service
	photoDir  string
	validator *validator.Validate
}

// NewAssetHandler creates a new asset handler. photoDir is where
// uploaded photos land; it is served statically.
func NewAssetHandler(assetService *assets.Service, photoDir string) *AssetHandler {
	return &AssetHandler{
		assets:    assetService,
		photoDir:  photoDir,
		validator: validator.New(),
	}
}

// List returns the full inventory.
func (h *AssetHandler) List(c echo.Context) error {
	all, err := h.assets.List(c.Request().Context())
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, all)
}

// Create adds an inventory item.
func (h *AssetHandler) Create(c echo.Context) error {
	var req models.CreateAssetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	asset, err := h.assets.Create(c.Request().Context(), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusCreated, asset)
}

// Update partially updates an asset (photo excluded).
func (h *AssetHandler) Update(c echo.Context) error {
	var req models.UpdateAssetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	asset, err := h.assets.Update(c.Request().Context(), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, asset)
}

// Delete removes an asset.
func (h *AssetHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	if err := h.assets.Delete(c.Request().Context(), uint(id)); err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

// UploadPhoto accepts a multipart photo for an asset and records its
// serving URL. Only image content types are accepted.
func (h *AssetHandler) UploadPhoto(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "A photo file is required",
		})
	}
	if file.Size > maxPhotoSize {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "file_too_large",
			Message: "Photos are limited to 5 MB",
		})
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_file_type",
			Message: "Only image uploads are accepted",
		})
	}

	src, err := file.Open()
	if err != nil {
		return errors.InternalError(c, err)
	}
	defer src.Close()

	if err := os.MkdirAll(h.photoDir, 0o755); err != nil {
		return errors.InternalError(c, err)
	}

	// Server-generated name; never trust the uploaded filename.
	name := fmt.Sprintf("asset-%d-%d%s", id, time.Now().UnixNano(),
		filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(h.photoDir, name))
	if err != nil {
		return errors.InternalError(c, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.InternalError(c, err)
	}

	url := "/uploads/" + name
	if err := h.assets.SetPhoto(c.Request().Context(), uint(id), url); err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"photoUrl": url})
}
