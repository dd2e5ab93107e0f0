package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/advanced-insight/advisory-backoffice/errors"
	dto "github.com/advanced-insight/advisory-backoffice/internal/adapter/dto/client"
	"github.com/advanced-insight/advisory-backoffice/internal/infrastructure/http/middleware"
	"github.com/advanced-insight/advisory-backoffice/internal/usecase/clientsvc"
)

// Client handles the client book endpoints
type Client struct {
	clientService *clientsvc.Service
	logger        *zap.Logger
}

// NewClient creates a client handler
func NewClient(clientService *clientsvc.Service, logger *zap.Logger) *Client {
	return &Client{clientService: clientService, logger: logger}
}

// Create adds a client to the book
func (h *Client) Create(c echo.Context) error {
	var req dto.CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	userID, _ := middleware.GetUserID(c)

	client, err := h.clientService.Create(c.Request().Context(), clientsvc.CreateInput{
		Name:          req.Name,
		Surname:       req.Surname,
		CompanyName:   req.CompanyName,
		Industry:      req.Industry,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		CreatedBy:     userID,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, client)
}

// Get returns one client
func (h *Client) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	client, err := h.clientService.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, client)
}

// List returns all clients
func (h *Client) List(c echo.Context) error {
	clients, err := h.clientService.List(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, clients)
}

// Update edits a client record
func (h *Client) Update(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req dto.UpdateClientRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	client, err := h.clientService.Update(c.Request().Context(), id, clientsvc.UpdateInput{
		Name:          req.Name,
		Surname:       req.Surname,
		CompanyName:   req.CompanyName,
		Industry:      req.Industry,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, client)
}

// Delete removes a client record
func (h *Client) Delete(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.clientService.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, nil)
}
