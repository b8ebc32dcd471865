package backend

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jo-hoe/rokkastyle/internal/core"
	"github.com/jo-hoe/rokkastyle/internal/effect"
	"github.com/jo-hoe/rokkastyle/internal/store"
	"github.com/jo-hoe/rokkastyle/internal/style"
)

type APIService struct {
	coreService *core.CoreService
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewAPIService(coreService *core.CoreService) *APIService {
	return &APIService{
		coreService: coreService,
	}
}

func (s *APIService) SetRoutes(e *echo.Echo) {
	e.GET("/probe", func(c echo.Context) error {
		return c.String(http.StatusOK, "API Service is running")
	})

	api := e.Group("/api")
	api.GET("/effects", s.listEffectsHandler)
	api.POST("/effects/:id/operations", s.buildEffectHandler)

	api.GET("/stacks", s.listStacksHandler)
	api.POST("/stacks", s.createStackHandler)
	api.POST("/stacks/preview", s.previewStackHandler)
	api.POST("/stacks/sync", s.syncStacksHandler)
	api.GET("/stacks/:name", s.getStackHandler)
	api.DELETE("/stacks/:name", s.deleteStackHandler)
}

func (s *APIService) listEffectsHandler(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.coreService.RegisteredEffects())
}

func (s *APIService) buildEffectHandler(ctx echo.Context) error {
	// decoded by hand, echo's binder would merge the path params into the map
	var config effect.Configuration
	if err := json.NewDecoder(ctx.Request().Body).Decode(&config); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "request body must be a JSON object"})
	}

	operations, err := s.coreService.BuildEffect(ctx.Param("id"), config)
	if err != nil {
		return s.respondError(ctx, "buildEffectHandler", err)
	}
	return ctx.JSON(http.StatusOK, operations)
}

func (s *APIService) listStacksHandler(ctx echo.Context) error {
	stacks, err := s.coreService.ListStacks(ctx.Request().Context())
	if err != nil {
		return s.respondError(ctx, "listStacksHandler", err)
	}
	return ctx.JSON(http.StatusOK, stacks)
}

func (s *APIService) createStackHandler(ctx echo.Context) error {
	imageStyle, err := bindStyle(ctx)
	if err != nil {
		return err
	}

	stored, err := s.coreService.BuildStack(ctx.Request().Context(), imageStyle)
	if err != nil {
		return s.respondError(ctx, "createStackHandler", err)
	}
	return ctx.JSON(http.StatusCreated, stored)
}

func (s *APIService) previewStackHandler(ctx echo.Context) error {
	imageStyle, err := bindStyle(ctx)
	if err != nil {
		return err
	}

	compiled, err := s.coreService.PreviewStack(imageStyle)
	if err != nil {
		return s.respondError(ctx, "previewStackHandler", err)
	}
	return ctx.JSON(http.StatusOK, compiled)
}

func (s *APIService) syncStacksHandler(ctx echo.Context) error {
	results, err := s.coreService.SyncStyles(ctx.Request().Context())
	if err != nil {
		return s.respondError(ctx, "syncStacksHandler", err)
	}
	return ctx.JSON(http.StatusOK, results)
}

func (s *APIService) getStackHandler(ctx echo.Context) error {
	stored, err := s.coreService.GetStack(ctx.Request().Context(), ctx.Param("name"))
	if err != nil {
		return s.respondError(ctx, "getStackHandler", err)
	}
	return ctx.JSON(http.StatusOK, stored)
}

func (s *APIService) deleteStackHandler(ctx echo.Context) error {
	if err := s.coreService.DeleteStack(ctx.Request().Context(), ctx.Param("name")); err != nil {
		return s.respondError(ctx, "deleteStackHandler", err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func bindStyle(ctx echo.Context) (style.ImageStyle, error) {
	var imageStyle style.ImageStyle
	if err := ctx.Bind(&imageStyle); err != nil {
		return imageStyle, echo.NewHTTPError(http.StatusBadRequest, "request body must be an image style")
	}
	if err := ctx.Validate(&imageStyle); err != nil {
		return imageStyle, err
	}
	return imageStyle, nil
}

func (s *APIService) respondError(ctx echo.Context, handler string, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error(handler+": request failed", "status", status, "error", err)
	} else {
		slog.Warn(handler+": request rejected", "status", status, "error", err)
	}
	return ctx.JSON(status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, effect.ErrInvalidConfiguration),
		errors.Is(err, effect.ErrUnknownEffect),
		errors.Is(err, style.ErrInvalidStyle):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrStackNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
