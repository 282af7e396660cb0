package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-api/internal/api/metrics"
	"github.com/devcamper/bootcamp-api/internal/core/ports"
)

// BootcampHandler handles HTTP requests for bootcamp resources.
type BootcampHandler struct {
	service ports.BootcampService
}

func NewBootcampHandler(service ports.BootcampService) *BootcampHandler {
	return &BootcampHandler{service: service}
}

// List handles GET /bootcamps.
//
// @Summary      List all bootcamps
// @Tags         bootcamps
// @Produce      json
// @Success      200  {object}  bootcampListResponse
// @Router       /bootcamps [get]
func (h *BootcampHandler) List(c echo.Context) error {
	bootcamps, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bootcampListResponse{
		Success: true,
		Count:   len(bootcamps),
		Data:    bootcamps,
	})
}

// Get handles GET /bootcamps/:id.
//
// @Summary      Get a single bootcamp
// @Tags         bootcamps
// @Produce      json
// @Param        id   path      string  true  "Bootcamp id"
// @Success      200  {object}  bootcampResponse
// @Failure      404  {object}  map[string]any
// @Router       /bootcamps/{id} [get]
func (h *BootcampHandler) Get(c echo.Context) error {
	bootcamp, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bootcampResponse{Success: true, Data: bootcamp})
}

// Create handles POST /bootcamps.
//
// @Summary      Create a bootcamp
// @Tags         bootcamps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bootcampRequest  true  "Bootcamp details"
// @Success      201   {object}  bootcampResponse
// @Failure      400   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /bootcamps [post]
func (h *BootcampHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req bootcampRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bootcamp, err := h.service.Create(c.Request().Context(), userID, toBootcampInput(req))
	if err != nil {
		return err
	}

	metrics.BootcampWritesTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, bootcampResponse{Success: true, Data: bootcamp})
}

// Update handles PUT /bootcamps/:id.
//
// @Summary      Update a bootcamp
// @Tags         bootcamps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Bootcamp id"
// @Param        body  body      bootcampRequest  true  "Bootcamp details"
// @Success      200   {object}  bootcampResponse
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /bootcamps/{id} [put]
func (h *BootcampHandler) Update(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req bootcampRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bootcamp, err := h.service.Update(c.Request().Context(), c.Param("id"), userID, role, toBootcampInput(req))
	if err != nil {
		return err
	}

	metrics.BootcampWritesTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, bootcampResponse{Success: true, Data: bootcamp})
}

// Delete handles DELETE /bootcamps/:id.
//
// @Summary      Delete a bootcamp
// @Tags         bootcamps
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bootcamp id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /bootcamps/{id} [delete]
func (h *BootcampHandler) Delete(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID, role); err != nil {
		return err
	}

	metrics.BootcampWritesTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Bootcamp deleted"})
}

func toBootcampInput(req bootcampRequest) ports.BootcampInput {
	return ports.BootcampInput{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
	}
}
