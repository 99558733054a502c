// FILE: internal/controller/product_controller.go
package controller

import (
	"ad-marketplace-be/internal/dto"
	"ad-marketplace-be/internal/pkg/serverutils"
	"ad-marketplace-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProductController interface {
	RegisterRoutes(r fiber.Router)
	GetProducts(ctx *fiber.Ctx) error
	GetProductByCode(ctx *fiber.Ctx) error
	CreateProduct(ctx *fiber.Ctx) error
	DeactivateProduct(ctx *fiber.Ctx) error
}

type productController struct {
	service service.IProductService
}

func NewProductController(service service.IProductService) IProductController {
	return &productController{service: service}
}

func (c *productController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/products")
	h.Get("/", c.GetProducts)
	h.Get("/:code", c.GetProductByCode)

	adm := r.Group("/admin/products")
	adm.Use(serverutils.JwtMiddleware)
	adm.Post("/", c.CreateProduct)
	adm.Delete("/:code", c.DeactivateProduct)
}

func (c *productController) GetProducts(ctx *fiber.Ctx) error {
	res, err := c.service.GetProducts(ctx.Context())
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Products", res))
}

func (c *productController) GetProductByCode(ctx *fiber.Ctx) error {
	res, err := c.service.GetProductByCode(ctx.Context(), ctx.Params("code"))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Product not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Product", res))
}

func (c *productController) CreateProduct(ctx *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateProduct(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Product created", res))
}

func (c *productController) DeactivateProduct(ctx *fiber.Ctx) error {
	if err := c.service.DeactivateProduct(ctx.Context(), ctx.Params("code")); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Product deactivated", nil))
}
