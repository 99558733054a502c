// FILE: internal/controller/subscription_controller.go
package controller

import (
	"ad-marketplace-be/internal/dto"
	"ad-marketplace-be/internal/pkg/serverutils"
	"ad-marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router)
	CreateSubscription(ctx *fiber.Ctx) error
	GetMySubscriptions(ctx *fiber.Ctx) error
	GetSubscription(ctx *fiber.Ctx) error
	CancelSubscription(ctx *fiber.Ctx) error
	ExtendSubscription(ctx *fiber.Ctx) error
	RefillQuota(ctx *fiber.Ctx) error
	ValidateUsage(ctx *fiber.Ctx) error
	RecordUsage(ctx *fiber.Ctx) error
	ValidateFreeAds(ctx *fiber.Ctx) error
	RecordFreeAds(ctx *fiber.Ctx) error
	GetFreeAdsSummary(ctx *fiber.Ctx) error

	// Addons
	CreateAddon(ctx *fiber.Ctx) error
	GetMyAddons(ctx *fiber.Ctx) error
	GetAddon(ctx *fiber.Ctx) error
	CancelAddon(ctx *fiber.Ctx) error
	ExtendAddon(ctx *fiber.Ctx) error
	ValidateAddonUsage(ctx *fiber.Ctx) error
	RecordAddonUsage(ctx *fiber.Ctx) error

	// Admin
	GetSubscriptions(ctx *fiber.Ctx) error
	GetActiveSubscriptions(ctx *fiber.Ctx) error
	AdminCancelSubscription(ctx *fiber.Ctx) error
	AdminCancelAddon(ctx *fiber.Ctx) error
	AdminUpdateUsage(ctx *fiber.Ctx) error
	ProvisionFreeAds(ctx *fiber.Ctx) error
}

type subscriptionController struct {
	service service.ISubscriptionService
}

func NewSubscriptionController(service service.ISubscriptionService) ISubscriptionController {
	return &subscriptionController{service: service}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subscriptions")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/", c.CreateSubscription)
	h.Get("/", c.GetMySubscriptions)
	h.Get("/:id", c.GetSubscription)
	h.Delete("/:id", c.CancelSubscription)
	h.Post("/:id/extend", c.ExtendSubscription)
	h.Post("/:id/refill", c.RefillQuota)
	h.Post("/:id/usage/validate", c.ValidateUsage)
	h.Post("/:id/usage/record", c.RecordUsage)
	h.Post("/:id/free-ads/validate", c.ValidateFreeAds)
	h.Post("/:id/free-ads/record", c.RecordFreeAds)
	h.Get("/:id/free-ads/summary", c.GetFreeAdsSummary)

	a := r.Group("/addons")
	a.Use(serverutils.JwtMiddleware)
	a.Post("/", c.CreateAddon)
	a.Get("/", c.GetMyAddons)
	a.Get("/:id", c.GetAddon)
	a.Delete("/:id", c.CancelAddon)
	a.Post("/:id/extend", c.ExtendAddon)
	a.Post("/:id/usage/validate", c.ValidateAddonUsage)
	a.Post("/:id/usage/record", c.RecordAddonUsage)

	adm := r.Group("/admin/subscriptions")
	adm.Use(serverutils.JwtMiddleware)
	adm.Get("/", c.GetSubscriptions)
	adm.Get("/active", c.GetActiveSubscriptions)
	adm.Delete("/:id", c.AdminCancelSubscription)
	adm.Put("/:id/usage", c.AdminUpdateUsage)
	adm.Post("/:id/free-ads/provision", c.ProvisionFreeAds)

	adma := r.Group("/admin/addons")
	adma.Use(serverutils.JwtMiddleware)
	adma.Delete("/:id", c.AdminCancelAddon)
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func pathId(ctx *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(ctx.Params("id"))
}

func (c *subscriptionController) CreateSubscription(ctx *fiber.Ctx) error {
	var req dto.CreateSubscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.UserId = currentUserId(ctx)
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	id, ok, err := c.service.CreateSubscription(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if !ok {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, "Subscription could not be created"))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Subscription created", map[string]string{
		"subscription_id": id.String(),
	}))
}

func (c *subscriptionController) GetMySubscriptions(ctx *fiber.Ctx) error {
	items, failed, err := c.service.GetUserSubscriptions(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("User subscriptions", fiber.Map{
		"items":  items,
		"failed": failed,
	}))
}

func (c *subscriptionController) GetSubscription(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription id"))
	}

	res, err := c.service.GetSubscription(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Subscription not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription", res))
}

func (c *subscriptionController) CancelSubscription(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription id"))
	}

	ok, err := c.service.CancelSubscription(ctx.Context(), id, currentUserId(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if !ok {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, "Subscription could not be cancelled"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Subscription cancelled", nil))
}

func (c *subscriptionController) ExtendSubscription(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription id"))
	}

	var req dto.ExtendSubscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ok, err := c.service.ExtendSubscription(ctx.Context(), id, req.DurationDays)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if !ok {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, "Subscription could not be extended"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Subscription extended", nil))
}

func (c *subscriptionController) RefillQuota(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription id"))
	}

	var req dto.RefillQuotaRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ok, err := c.service.RefillQuota(ctx.Context(), id, req.BudgetType, req.Amount)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if !ok {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, "Quota could not be refilled"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Quota refilled", nil))
}

func (c *subscriptionController) ValidateUsage(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription id"))
	}

	var req dto.UsageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	result, err := c.service.ValidateUsage(ctx.Context(), id, req.Action, req.Quantity)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Validation result", result))
}

func (c *subscriptionController) RecordUsage(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription id"))
	}

	var req dto.UsageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ok, err := c.service.RecordUsage(ctx.Context(), id, req.Action, req.Quantity)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if !ok {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, "Usage could not be recorded"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Usage recorded", nil))
}

func (c *subscriptionController) ValidateFreeAds(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription id"))
	}

	var req dto.FreeAdsUsageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	result, err := c.service.ValidateFreeAdsUsage(ctx.Context(), id, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Free ads validation result", result))
}

func (c *subscriptionController) RecordFreeAds(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription id"))
	}

	var req dto.FreeAdsUsageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ok, err := c.service.RecordFreeAdsUsage(ctx.Context(), id, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if !ok {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, "Free ads usage could not be recorded"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Free ads usage recorded", nil))
}

func (c *subscriptionController) GetFreeAdsSummary(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription id"))
	}

	summary, err := c.service.GetFreeAdsSummary(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Free ads summary", summary))
}

// --- Addons ---

func (c *subscriptionController) CreateAddon(ctx *fiber.Ctx) error {
	var req dto.CreateAddonRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	req.UserId = currentUserId(ctx)
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	id, ok, err := c.service.CreateAddon(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if !ok {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, "Addon could not be created"))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Addon created", map[string]string{
		"addon_id": id.String(),
	}))
}

func (c *subscriptionController) GetMyAddons(ctx *fiber.Ctx) error {
	items, failed, err := c.service.GetUserAddons(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("User addons", fiber.Map{
		"items":  items,
		"failed": failed,
	}))
}

func (c *subscriptionController) GetAddon(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid addon id"))
	}

	res, err := c.service.GetAddon(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Addon not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Addon", res))
}

func (c *subscriptionController) CancelAddon(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid addon id"))
	}

	ok, err := c.service.CancelAddon(ctx.Context(), id, currentUserId(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if !ok {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, "Addon could not be cancelled"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Addon cancelled", nil))
}

func (c *subscriptionController) ExtendAddon(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid addon id"))
	}

	var req dto.ExtendSubscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ok, err := c.service.ExtendAddon(ctx.Context(), id, req.DurationDays)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if !ok {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, "Addon could not be extended"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Addon extended", nil))
}

func (c *subscriptionController) AdminCancelAddon(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid addon id"))
	}

	ok, err := c.service.AdminCancelAddon(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if !ok {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, "Addon could not be cancelled"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Addon cancelled", nil))
}

func (c *subscriptionController) ValidateAddonUsage(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid addon id"))
	}

	var req dto.UsageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	result, err := c.service.ValidateAddonUsage(ctx.Context(), id, req.Action, req.Quantity)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Validation result", result))
}

func (c *subscriptionController) RecordAddonUsage(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid addon id"))
	}

	var req dto.UsageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ok, err := c.service.RecordAddonUsage(ctx.Context(), id, req.Action, req.Quantity)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if !ok {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, "Usage could not be recorded"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Usage recorded", nil))
}

// --- Admin ---

func (c *subscriptionController) GetSubscriptions(ctx *fiber.Ctx) error {
	filter := dto.SubscriptionFilter{
		Status:   ctx.Query("status"),
		Vertical: ctx.Query("vertical"),
		Page:     ctx.QueryInt("page", 1),
		PageSize: ctx.QueryInt("page_size", 20),
	}
	if userIdStr := ctx.Query("user_id"); userIdStr != "" {
		if userId, err := uuid.Parse(userIdStr); err == nil {
			filter.UserId = &userId
		}
	}
	if companyIdStr := ctx.Query("company_id"); companyIdStr != "" {
		if companyId, err := uuid.Parse(companyIdStr); err == nil {
			filter.CompanyId = &companyId
		}
	}

	res, err := c.service.GetSubscriptions(ctx.Context(), &filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscriptions", res))
}

func (c *subscriptionController) GetActiveSubscriptions(ctx *fiber.Ctx) error {
	items, failed, err := c.service.GetAllActiveSubscriptions(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Active subscriptions", fiber.Map{
		"items":  items,
		"failed": failed,
	}))
}

func (c *subscriptionController) AdminCancelSubscription(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription id"))
	}

	ok, err := c.service.AdminCancelSubscription(ctx.Context(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if !ok {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, "Subscription could not be cancelled"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Subscription cancelled", nil))
}

func (c *subscriptionController) AdminUpdateUsage(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription id"))
	}

	var req dto.AdminUsageOverrideRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	ok, err := c.service.AdminUpdateUsage(ctx.Context(), id, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Subscription not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Usage counters updated", nil))
}

func (c *subscriptionController) ProvisionFreeAds(ctx *fiber.Ctx) error {
	id, err := pathId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid subscription id"))
	}

	var req dto.ProvisionFreeAdsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	ok, err := c.service.ProvisionFreeAdsQuota(ctx.Context(), id, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if !ok {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Subscription not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Free ads quota provisioned", nil))
}
