package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jobdash/jobdash/internal/credentials"
	"github.com/jobdash/jobdash/internal/dashboard"
	errs "github.com/jobdash/jobdash/internal/errors"
	"github.com/jobdash/jobdash/internal/jobs"
	"github.com/jobdash/jobdash/internal/render"
	"github.com/jobdash/jobdash/internal/types"
)

// Dashboard is the state holder the handlers drive
type Dashboard interface {
	Snapshot() dashboard.Snapshot
	RequestSort(key jobs.SortKey) jobs.SortState
	StartAgent(ctx context.Context) (*types.Ack, error)
	StopAgent(ctx context.Context) (*types.Ack, error)
	SubmitCredentials(ctx context.Context, email, password string) (*credentials.Result, error)
}

type DashboardHandler struct {
	dashboard Dashboard
}

func NewDashboardHandler(d Dashboard) *DashboardHandler {
	return &DashboardHandler{
		dashboard: d,
	}
}

// GetDashboard returns the current dashboard view
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	return c.JSON(success(render.NewView(h.dashboard.Snapshot())))
}

// RequestSort applies a column-header click
func (h *DashboardHandler) RequestSort(c *fiber.Ctx) error {
	var req SortRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput("invalid request body"))
	}

	key, err := jobs.ParseSortKey(req.Key)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(err.Error()))
	}

	return c.JSON(success(h.dashboard.RequestSort(key)))
}

// StartAgent starts the agent and the auto-refresh
func (h *DashboardHandler) StartAgent(c *fiber.Ctx) error {
	ack, err := h.dashboard.StartAgent(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(success(ack))
}

// StopAgent stops the agent and the auto-refresh
func (h *DashboardHandler) StopAgent(c *fiber.Ctx) error {
	ack, err := h.dashboard.StopAgent(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(success(ack))
}

// SubmitCredentials forwards the credentials form to the agent
func (h *DashboardHandler) SubmitCredentials(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, errs.ValidationError("invalid request body"))
	}

	res, err := h.dashboard.SubmitCredentials(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(success(res))
}
