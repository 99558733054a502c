// FILE: internal/controller/moderation_controller.go
package controller

import (
	"ad-marketplace-be/internal/dto"
	"ad-marketplace-be/internal/pkg/serverutils"
	"ad-marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IModerationController interface {
	RegisterRoutes(r fiber.Router)
	BulkEditAds(ctx *fiber.Ctx) error
}

type moderationController struct {
	service service.IModerationService
}

func NewModerationController(service service.IModerationService) IModerationController {
	return &moderationController{service: service}
}

func (c *moderationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/moderation")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/ads/bulk-edit", c.BulkEditAds)
}

func (c *moderationController) BulkEditAds(ctx *fiber.Ctx) error {
	var req dto.BulkEditAdsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.BulkEditAds(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Bulk edit processed", res))
}
