package imaging

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tricare/tricare/internal/platform/auth"
)

const maxImageSize = 10 << 20 // 10 MB

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true,
	".dcm": true, ".dicom": true,
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the imaging routes. The group should carry optional
// authentication.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/prescreen", h.PrescreenImage)
}

func (h *Handler) PrescreenImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	if fileHeader.Size > maxImageSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File size exceeds 10MB limit. Please upload a smaller image.")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, "Unsupported file type. Please upload: .jpg, .jpeg, .png, .dcm, .dicom")
	}

	imageType := strings.ToLower(strings.TrimSpace(c.FormValue("image_type")))
	if !ValidImageTypes[imageType] {
		return echo.NewHTTPError(http.StatusBadRequest, "image_type must be one of: x-ray, ct, mri")
	}

	var bodyPart *string
	if bp := strings.TrimSpace(c.FormValue("body_part")); bp != "" {
		bodyPart = &bp
	}

	f, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read file")
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxImageSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read file")
	}
	if len(content) > maxImageSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File size exceeds 10MB limit. Please upload a smaller image.")
	}

	var userID *uuid.UUID
	if id, ok := auth.UserIDFromContext(c.Request().Context()); ok {
		userID = &id
	}

	resp, err := h.svc.Prescreen(c.Request().Context(), content, fileHeader.Filename, imageType, bodyPart, userID)
	if err != nil {
		if strings.Contains(err.Error(), "unable to process DICOM") {
			return echo.NewHTTPError(http.StatusBadRequest, "Unable to process DICOM file. Please verify the file is valid.")
		}
		// Model output and upstream detail stay out of the client response.
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to analyze image. Please try again or contact support.")
	}
	return c.JSON(http.StatusOK, resp)
}
