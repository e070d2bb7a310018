package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-replenishment-service/internal/auth"
	"github.com/fekuna/omnipos-replenishment-service/internal/replenishment"
	"github.com/fekuna/omnipos-replenishment-service/internal/replenishment/dto"
	"github.com/fekuna/omnipos-replenishment-service/internal/session"
	"github.com/fekuna/omnipos-replenishment-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WorkflowHandler exposes the replenishment workflow to the admin UI. Each
// session is one workflow instance; the UI drives it with the same actions it
// previously executed client-side.
type WorkflowHandler struct {
	sessions *session.Registry
	logger   logger.ZapLogger
}

func NewWorkflowHandler(sessions *session.Registry, log logger.ZapLogger) *WorkflowHandler {
	return &WorkflowHandler{
		sessions: sessions,
		logger:   log,
	}
}

func (h *WorkflowHandler) Register(rg *gin.RouterGroup) {
	s := rg.Group("/sessions")
	s.POST("", h.CreateSession)
	s.GET("/:id", h.GetState)
	s.DELETE("/:id", h.DeleteSession)
	s.POST("/:id/refresh", h.RefreshAlerts)
	s.GET("/:id/groups", h.ListGroups)
	s.POST("/:id/selection", h.UpdateSelection)
	s.PUT("/:id/horizon", h.SetHorizon)
	s.POST("/:id/forecasts", h.GenerateForecasts)
	s.GET("/:id/forecasts", h.ListForecasts)
	s.POST("/:id/orders", h.GenerateOrders)
	s.GET("/:id/result", h.GetResult)
	s.POST("/:id/reset", h.ResetSession)
}

func (h *WorkflowHandler) CreateSession(c *gin.Context) {
	id, workflow := h.sessions.Create()
	state := workflow.State()
	state.SessionID = id
	c.JSON(http.StatusCreated, state)
}

func (h *WorkflowHandler) GetState(c *gin.Context) {
	workflow, ok := h.workflow(c)
	if !ok {
		return
	}
	state := workflow.State()
	state.SessionID = c.Param("id")
	c.JSON(http.StatusOK, state)
}

func (h *WorkflowHandler) DeleteSession(c *gin.Context) {
	h.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *WorkflowHandler) RefreshAlerts(c *gin.Context) {
	workflow, ok := h.workflow(c)
	if !ok {
		return
	}
	if err := workflow.RefreshAlerts(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, workflow.State())
}

func (h *WorkflowHandler) ListGroups(c *gin.Context) {
	workflow, ok := h.workflow(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"grupos": workflow.Groups()})
}

func (h *WorkflowHandler) UpdateSelection(c *gin.Context) {
	workflow, ok := h.workflow(c)
	if !ok {
		return
	}

	var input dto.SelectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Action {
	case dto.SelectionActionToggle:
		workflow.Toggle(*input.AlertID, *input.Included)
	case dto.SelectionActionSupplier:
		workflow.ToggleForSupplier(*input.SupplierID, *input.Included)
	case dto.SelectionActionClear:
		workflow.ClearSelection()
	}

	c.JSON(http.StatusOK, gin.H{"totalSeleccionadas": workflow.SelectionSize()})
}

func (h *WorkflowHandler) SetHorizon(c *gin.Context) {
	workflow, ok := h.workflow(c)
	if !ok {
		return
	}

	var input dto.HorizonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := workflow.SetHorizon(input.HorizonDays); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"horizonteTiempo": workflow.Horizon()})
}

func (h *WorkflowHandler) GenerateForecasts(c *gin.Context) {
	workflow, ok := h.workflow(c)
	if !ok {
		return
	}
	if err := workflow.GenerateForecasts(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"etapa":       workflow.Stage().String(),
		"pronosticos": workflow.Forecasts(),
	})
}

func (h *WorkflowHandler) ListForecasts(c *gin.Context) {
	workflow, ok := h.workflow(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"pronosticos": workflow.Forecasts()})
}

func (h *WorkflowHandler) GenerateOrders(c *gin.Context) {
	workflow, ok := h.workflow(c)
	if !ok {
		return
	}

	var input dto.GenerateOrdersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	operatorID := auth.GetOperatorID(c)
	if err := workflow.GenerateOrders(c.Request.Context(), operatorID, input.Notes); err != nil {
		h.fail(c, err)
		return
	}

	view, err := workflow.Result()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *WorkflowHandler) GetResult(c *gin.Context) {
	workflow, ok := h.workflow(c)
	if !ok {
		return
	}
	view, err := workflow.Result()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *WorkflowHandler) ResetSession(c *gin.Context) {
	workflow, ok := h.workflow(c)
	if !ok {
		return
	}
	workflow.Reset()
	c.JSON(http.StatusOK, workflow.State())
}

func (h *WorkflowHandler) workflow(c *gin.Context) (replenishment.UseCase, bool) {
	workflow, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": session.ErrNotFound.Error()})
		return nil, false
	}
	return workflow, true
}

// fail maps workflow errors onto HTTP statuses: validation and sequencing
// problems are the client's to fix, everything else is an upstream failure.
func (h *WorkflowHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, replenishment.ErrEmptySelection),
		errors.Is(err, replenishment.ErrInvalidHorizon):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, replenishment.ErrWrongStage),
		errors.Is(err, replenishment.ErrStageBusy),
		errors.Is(err, replenishment.ErrRunSuperseded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, replenishment.ErrNoResult):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("platform call failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "la plataforma no respondió correctamente"})
	}
}
