package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/erp-service/internal/api/dto"
	"github.com/spec-kit/erp-service/internal/auth"
	"github.com/spec-kit/erp-service/internal/service"
	apperrors "github.com/spec-kit/erp-service/pkg/util"
)

// OrdersHandler exposes order endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// List handles GET /orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	resolved, err := h.orders.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.OrderResponse, 0, len(resolved))
	for i := range resolved {
		items = append(items, orderResponse(&resolved[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	resolved, err := h.orders.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponse(resolved)})
}

// Create handles POST /orders. The order owner is the token identity, not
// anything in the request body.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	resolved, err := h.orders.Create(c.UserContext(), principal.UserID, orderInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": orderResponse(resolved)})
}

// Update handles PUT /orders/:id.
func (h *OrdersHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	resolved, err := h.orders.Update(c.UserContext(), c.Params("id"), principal.UserID, orderInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": orderResponse(resolved)})
}

// Delete handles DELETE /orders/:id.
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.orders.Delete(c.UserContext(), c.Params("id"), principal.UserID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Order deleted"})
}

func orderInput(req dto.OrderRequest) service.OrderInput {
	lines := make([]service.OrderLineInput, 0, len(req.Products))
	for _, line := range req.Products {
		lines = append(lines, service.OrderLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return service.OrderInput{Products: lines, Status: req.Status}
}

func orderResponse(resolved *service.ResolvedOrder) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:        resolved.Order.ID,
		UserID:    resolved.Order.UserID,
		Total:     resolved.Order.Total,
		Status:    resolved.Order.Status,
		CreatedAt: resolved.Order.CreatedAt,
		UpdatedAt: resolved.Order.UpdatedAt,
	}
	if resolved.User != nil {
		resp.User = &dto.OrderUserRef{
			ID:    resolved.User.ID,
			Email: resolved.User.Email,
			Role:  resolved.User.Role,
		}
	}
	resp.Products = make([]dto.OrderLineResponse, 0, len(resolved.Lines))
	for _, line := range resolved.Lines {
		item := dto.OrderLineResponse{
			ProductID: line.Line.ProductID,
			Quantity:  line.Line.Quantity,
		}
		if line.Product != nil {
			item.Product = &dto.OrderProductRef{
				ID:    line.Product.ID,
				Name:  line.Product.Name,
				Price: line.Product.Price,
			}
		}
		resp.Products = append(resp.Products, item)
	}
	return resp
}
