package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"catalog/internal/models"
	"catalog/internal/services"
	"catalog/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the product routes under router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts lists products. A "name" query selects products by name, an "order"
// query sorts every product by price, and no query lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	args := c.Context().QueryArgs()
	ctx := c.UserContext()

	switch {
	case args.Has("name"):
		name := c.Query("name")
		if strings.TrimSpace(name) == "" {
			return errs.ValidationError{"name": "the name must not be blank"}
		}
		products, err := h.service.ListByName(ctx, name)
		if err != nil {
			return err
		}
		return c.JSON(products)

	case args.Has("order"):
		dir, ok := models.ParseSortDirection(c.Query("order"))
		if !ok {
			return errs.Unprocessable("the requested order does not exist")
		}
		products, err := h.service.ListAllSortedByPrice(ctx, dir)
		if err != nil {
			return err
		}
		return c.JSON(products)
	}

	products, err := h.service.ListAll(ctx)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	product, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreateProduct validates the body against the creation rules and stores a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	product, err := h.service.Create(c.UserContext(), req.Product())
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleUpdateProduct validates the body against the update rules and merges it into the
// product with the path ID.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	var req UpdateProductRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	product, err := h.service.Update(c.UserContext(), id, req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes the product with the path ID. A missing product is reported as
// a conflict rather than as not found.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return err
	}
	deleted, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.Conflict("no product exists with id: '%d'", id)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("the product with id '%d' was successfully deleted", id),
	})
}

// productID parses the path id. Ids are limited to 63 bits, the range SQL drivers accept.
func productID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 63)
	if err != nil || id == 0 {
		return 0, errs.ValidationError{"id": "the id must be a positive integer"}
	}
	return id, nil
}

// parseBody decodes the JSON body into out. Type mismatches are reported against the
// offending field.
func parseBody(c *fiber.Ctx, out any) error {
	err := c.BodyParser(out)
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return errs.ValidationError{typeErr.Field: fmt.Sprintf("the %s has an invalid value", typeErr.Field)}
	}
	return errs.ValidationError{"body": "the request body is malformed"}
}
