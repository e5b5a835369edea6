package doctor

import (
	"errors"
	"net/http"
	"sort"

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

// RegisterRoutes mounts search publicly and favorites behind authentication.
func (h *Handler) RegisterRoutes(g *echo.Group, authmw echo.MiddlewareFunc) {
	g.POST("/search", h.SearchDoctors)
	g.GET("/specializations", h.GetSpecializations)

	fav := g.Group("/favorites", authmw)
	fav.POST("", h.AddFavorite)
	fav.GET("", h.ListFavorites)
	fav.PUT("/:id", h.UpdateFavorite)
	fav.DELETE("/:id", h.RemoveFavorite)
}

func (h *Handler) SearchDoctors(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.svc.Search(c.Request().Context(), &req)
	if err != nil {
		// Covers registry outages as well as unexpected failures.
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to search for doctors. Please try again later.")
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetSpecializations(c echo.Context) error {
	specs := make([]string, len(Specializations))
	copy(specs, Specializations)
	sort.Strings(specs)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"specializations": specs,
		"total":           len(specs),
	})
}

func (h *Handler) AddFavorite(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req CreateFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fav, err := h.svc.AddFavorite(c.Request().Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrAlreadyFavorite) {
			return echo.NewHTTPError(http.StatusBadRequest, "Doctor already in favorites")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save doctor")
	}
	return c.JSON(http.StatusCreated, fav)
}

func (h *Handler) ListFavorites(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	favorites, err := h.svc.ListFavorites(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list favorites")
	}
	return c.JSON(http.StatusOK, favorites)
}

func (h *Handler) UpdateFavorite(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid favorite id")
	}

	var req UpdateFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	fav, err := h.svc.UpdateFavorite(c.Request().Context(), userID, id, &req)
	if err != nil {
		if errors.Is(err, ErrFavoriteNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Favorite doctor not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update favorite")
	}
	return c.JSON(http.StatusOK, fav)
}

func (h *Handler) RemoveFavorite(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid favorite id")
	}

	if err := h.svc.RemoveFavorite(c.Request().Context(), userID, id); err != nil {
		if errors.Is(err, ErrFavoriteNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Favorite doctor not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to remove favorite")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Doctor removed from favorites"})
}
