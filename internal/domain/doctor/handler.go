package doctor

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careslot/careslot/internal/platform/auth"
	"github.com/careslot/careslot/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctors", h.List)
	api.GET("/doctors/specialties", h.Specialties)
	api.GET("/doctors/:id", h.Get)
	api.GET("/doctors/:id/availability", h.WeeklyAvailability)

	admin := api.Group("", auth.RequireRole("admin"))
	admin.POST("/doctors", h.Create)
	admin.PUT("/doctors/:id", h.Update)
	admin.DELETE("/doctors/:id", h.Deactivate)
}

type listResponse struct {
	Doctors    []*Doctor       `json:"doctors"`
	Pagination pagination.Meta `json:"pagination"`
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	filter := ListFilter{
		Specialty: c.QueryParam("specialty"),
		Search:    c.QueryParam("search"),
	}

	items, total, err := h.svc.List(c.Request().Context(), filter, pg.PageSize, pg.Offset())
	if err != nil {
		return err
	}
	if items == nil {
		items = []*Doctor{}
	}
	return c.JSON(http.StatusOK, listResponse{
		Doctors:    items,
		Pagination: pagination.NewMeta(pg, len(items), total),
	})
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Specialties(c echo.Context) error {
	specs, err := h.svc.Specialties(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string][]string{"specialties": specs})
}

func (h *Handler) WeeklyAvailability(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]Availability{"availability": d.Availability})
}

func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	d, err := h.svc.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	d, err := h.svc.Update(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Deactivate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Deactivate(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
