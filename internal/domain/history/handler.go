package history

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tricare/tricare/internal/platform/auth"
	"github.com/tricare/tricare/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the history routes. All of them require
// authentication; pass an authenticated group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/reports", h.ListReports)
	g.GET("/reports/:id", h.GetReport)
	g.DELETE("/reports/:id", h.DeleteReport)

	g.GET("/symptoms", h.ListSymptoms)
	g.GET("/symptoms/:id", h.GetSymptom)
	g.DELETE("/symptoms/:id", h.DeleteSymptom)

	g.GET("/imaging", h.ListImaging)
	g.GET("/imaging/:id", h.GetImaging)
	g.DELETE("/imaging/:id", h.DeleteImaging)

	g.GET("/dashboard", h.GetDashboard)
}

func requestIdentity(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	userID, ok := auth.UserIDFromContext(c.Request().Context())
	if !ok {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	return userID, id, nil
}

func (h *Handler) ListReports(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	p := pagination.FromContext(c)

	records, err := h.svc.ListReports(c.Request().Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list report history")
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) GetReport(c echo.Context) error {
	userID, id, err := requestIdentity(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.GetReport(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load report")
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) DeleteReport(c echo.Context) error {
	userID, id, err := requestIdentity(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteReport(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Report not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete report")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Report deleted successfully"})
}

func (h *Handler) ListSymptoms(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	p := pagination.FromContext(c)

	records, err := h.svc.ListSymptoms(c.Request().Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list symptom history")
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) GetSymptom(c echo.Context) error {
	userID, id, err := requestIdentity(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.GetSymptom(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Symptom record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load symptom record")
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) DeleteSymptom(c echo.Context) error {
	userID, id, err := requestIdentity(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteSymptom(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Symptom record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete symptom record")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Symptom record deleted successfully"})
}

func (h *Handler) ListImaging(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	p := pagination.FromContext(c)

	records, err := h.svc.ListImaging(c.Request().Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list imaging history")
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handler) GetImaging(c echo.Context) error {
	userID, id, err := requestIdentity(c)
	if err != nil {
		return err
	}
	rec, err := h.svc.GetImaging(c.Request().Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Imaging record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load imaging record")
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) DeleteImaging(c echo.Context) error {
	userID, id, err := requestIdentity(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteImaging(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Imaging record not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete imaging record")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Imaging record deleted successfully"})
}

func (h *Handler) GetDashboard(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	stats, err := h.svc.Dashboard(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load dashboard")
	}
	return c.JSON(http.StatusOK, stats)
}
