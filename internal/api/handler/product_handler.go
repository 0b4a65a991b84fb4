package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercadolocal/catalog-system/internal/api/metrics"
	"github.com/mercadolocal/catalog-system/internal/core/domain"
	"github.com/mercadolocal/catalog-system/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	catalog ports.CatalogService
	users   ports.UserService
}

func NewProductHandler(catalog ports.CatalogService, users ports.UserService) *ProductHandler {
	return &ProductHandler{catalog: catalog, users: users}
}

type createProductRequest struct {
	Name             string  `json:"name" validate:"required,max=100"`
	Description      string  `json:"description" validate:"required,max=500"`
	Price            float64 `json:"price" validate:"required,gt=0,lte=999999.99"`
	Stock            int     `json:"stock" validate:"gte=0,lte=999999"`
	SellerID         string  `json:"seller_id" validate:"required"`
	ImageData        string  `json:"image_data"`
	ImageContentType string  `json:"image_content_type" validate:"max=100"`
}

type updateProductRequest struct {
	Name             *string  `json:"name" validate:"omitempty,max=100"`
	Description      *string  `json:"description" validate:"omitempty,max=500"`
	Price            *float64 `json:"price" validate:"omitempty,gt=0,lte=999999.99"`
	Stock            *int     `json:"stock" validate:"omitempty,gte=0,lte=999999"`
	Active           *bool    `json:"active"`
	ImageData        *string  `json:"image_data"`
	ImageContentType *string  `json:"image_content_type" validate:"omitempty,max=100"`
}

type stockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// List returns all active products; the listing omits image payloads.
//
// @Summary      List active products
// @Tags         products
// @Produce      json
// @Success      200  {array}  productResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.catalog.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductListing(c.Request().Context(), h.users, products))
}

// ListAvailable returns active products with stock on hand.
//
// @Summary      List available products
// @Tags         products
// @Produce      json
// @Success      200  {array}  productResponse
// @Router       /api/products/available [get]
func (h *ProductHandler) ListAvailable(c echo.Context) error {
	products, err := h.catalog.ListAvailable(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductListing(c.Request().Context(), h.users, products))
}

// ListBySeller returns a seller's active products.
//
// @Summary      List products by seller
// @Tags         products
// @Produce      json
// @Param        sellerId  path     string  true  "Seller id"
// @Success      200       {array}  productResponse
// @Router       /api/products/seller/{sellerId} [get]
func (h *ProductHandler) ListBySeller(c echo.Context) error {
	products, err := h.catalog.ListBySeller(c.Request().Context(), c.Param("sellerId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductListing(c.Request().Context(), h.users, products))
}

// Get returns one product including its image as a data URI.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.catalog.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.detailResponse(c.Request().Context(), product))
}

// Create adds a product to the catalog.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalog.Create(c.Request().Context(), actorName(c), ports.CreateProductInput{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Stock:            req.Stock,
		SellerID:         req.SellerID,
		ImageData:        req.ImageData,
		ImageContentType: req.ImageContentType,
	})
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, h.detailResponse(c.Request().Context(), product))
}

// Update applies a tri-state partial update: omitted fields keep their value,
// and an explicitly empty image clears it.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalog.Update(c.Request().Context(), actorName(c), c.Param("id"), ports.UpdateProductInput{
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Stock:            req.Stock,
		Active:           req.Active,
		ImageData:        req.ImageData,
		ImageContentType: req.ImageContentType,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.detailResponse(c.Request().Context(), product))
}

// Delete soft-deletes a product. Repeating the call is a no-op.
//
// @Summary      Delete a product
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	deleted, err := h.catalog.Delete(c.Request().Context(), actorName(c), c.Param("id"))
	if err != nil {
		return err
	}
	if deleted {
		metrics.ProductsDeletedTotal.Inc()
	}
	return c.NoContent(http.StatusNoContent)
}

// ReduceStock decrements a product's stock.
//
// @Summary      Reduce product stock
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Product id"
// @Param        body  body      stockRequest  true  "Quantity"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/products/{id}/stock/reduce [post]
func (h *ProductHandler) ReduceStock(c echo.Context) error {
	return h.adjustStock(c, h.catalog.ReduceStock)
}

// AddStock increments a product's stock.
//
// @Summary      Add product stock
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Product id"
// @Param        body  body      stockRequest  true  "Quantity"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/products/{id}/stock/add [post]
func (h *ProductHandler) AddStock(c echo.Context) error {
	return h.adjustStock(c, h.catalog.AddStock)
}

func (h *ProductHandler) adjustStock(
	c echo.Context,
	apply func(ctx context.Context, actor, id string, quantity int) (*domain.Product, error),
) error {
	var req stockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := apply(c.Request().Context(), actorName(c), c.Param("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.detailResponse(c.Request().Context(), product))
}

func (h *ProductHandler) detailResponse(ctx context.Context, product *domain.Product) productResponse {
	sellers := sellerSummaries(ctx, h.users, []domain.Product{*product})
	return toProductResponse(product, sellers[product.SellerID], true)
}
