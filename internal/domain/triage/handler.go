package triage

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tricare/tricare/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the symptom routes. The group should carry optional
// authentication so anonymous analysis works but signed-in runs are
// attributed to the user.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/route", h.RouteSymptoms)
	g.GET("/urgency-levels", h.GetUrgencyLevels)
}

func (h *Handler) RouteSymptoms(c echo.Context) error {
	var req RouteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var userID *uuid.UUID
	if id, ok := auth.UserIDFromContext(c.Request().Context()); ok {
		userID = &id
	}

	resp, err := h.svc.Route(c.Request().Context(), req, userID)
	if err != nil {
		// Upstream detail stays out of the client response.
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to process symptoms. Please try again.")
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetUrgencyLevels(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"urgency_levels": UrgencyLevels,
		"important_note": "This is educational guidance only. If you're unsure about your symptoms, always err on the side of caution and seek medical advice.",
	})
}
