package report

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tricare/tricare/internal/platform/auth"
	"github.com/tricare/tricare/internal/platform/extract"
)

const maxReportSize = 5 << 20 // 5 MB

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the report routes. The group should carry optional
// authentication.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/simplify", h.SimplifyReport)
}

func (h *Handler) SimplifyReport(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	if fileHeader.Size > maxReportSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File size exceeds 5MB limit. Please upload a smaller document.")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read file")
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxReportSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to read file")
	}
	if len(content) > maxReportSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "File size exceeds 5MB limit. Please upload a smaller document.")
	}

	var userID *uuid.UUID
	if id, ok := auth.UserIDFromContext(c.Request().Context()); ok {
		userID = &id
	}

	contentType := fileHeader.Header.Get("Content-Type")
	resp, err := h.svc.SimplifyDocument(c.Request().Context(), content, fileHeader.Filename, contentType, userID)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedType):
			// The accepted list comes from the extractor so it never drifts
			// from what extraction actually handles.
			return echo.NewHTTPError(http.StatusUnsupportedMediaType,
				fmt.Sprintf("Unsupported file type. Please upload: %s", h.svc.AcceptedDocumentTypes()))
		case errors.Is(err, extract.ErrEmptyDocument):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "too short"):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to simplify report. Please try again or contact support.")
		}
	}
	return c.JSON(http.StatusOK, resp)
}
