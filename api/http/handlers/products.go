package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vkuzn/unimarket/api/http/presenter"
	"github.com/vkuzn/unimarket/pkg/product"
	"github.com/vkuzn/unimarket/pkg/security/jwt"
)

const defaultListLimit = 50

type ProductHandler struct {
	uc product.UseCase
}

func NewProductHandler(uc product.UseCase) *ProductHandler { return &ProductHandler{uc: uc} }

type productRequest struct {
	UserID        *int64  `json:"userId"`
	CategoryID    int64   `json:"categoryId"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Location      string  `json:"location"`
	ImageURL      string  `json:"imageUrl"`
	ShowEmail     bool    `json:"showEmail"`
	ShowWhatsapp  bool    `json:"showWhatsapp"`
	ShowMessenger bool    `json:"showMessenger"`
}

func (r productRequest) input() product.Input {
	return product.Input{
		CategoryID:    r.CategoryID,
		Title:         r.Title,
		Description:   r.Description,
		Price:         r.Price,
		Location:      r.Location,
		ImageURL:      r.ImageURL,
		ShowEmail:     r.ShowEmail,
		ShowWhatsapp:  r.ShowWhatsapp,
		ShowMessenger: r.ShowMessenger,
	}
}

func parseProductID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid product id")
	}
	return id, nil
}

func productError(c *fiber.Ctx, err error) error {
	var ev product.ErrValidation
	switch {
	case errors.As(err, &ev):
		return presenter.Error(c, http.StatusBadRequest, ev.Error())
	case errors.Is(err, product.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "product not found")
	case errors.Is(err, product.ErrForbidden):
		return presenter.Error(c, http.StatusForbidden, "forbidden")
	default:
		return presenter.Internal(c, err)
	}
}

// List returns all listings, newest first, optionally filtered by category.
// @Summary List products
// @Tags    products
// @Produce json
// @Param   categoryId query int false "filter by category"
// @Param   limit query int false "page size"
// @Param   offset query int false "page offset"
// @Success 200 {array} product.Product
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var categoryID int64
	if v := strings.TrimSpace(c.Query("categoryId")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return presenter.Error(c, http.StatusBadRequest, "categoryId must be a positive integer")
		}
		categoryID = n
	}
	limit, offset := parseLimitOffset(c, defaultListLimit)
	products, err := h.uc.List(c.Context(), product.ListFilter{
		CategoryID: categoryID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return presenter.Internal(c, err)
	}
	return presenter.JSON(c, http.StatusOK, products)
}

// ListMine returns the authenticated caller's own listings.
// @Summary List own products
// @Tags    products
// @Produce json
// @Security BearerAuth
// @Success 200 {array} product.Product
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /products/me [get]
func (h *ProductHandler) ListMine(c *fiber.Ctx) error {
	identity, ok := jwt.IdentityFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	limit, offset := parseLimitOffset(c, defaultListLimit)
	products, err := h.uc.ListByOwner(c.Context(), identity.UserID, limit, offset)
	if err != nil {
		return presenter.Internal(c, err)
	}
	return presenter.JSON(c, http.StatusOK, products)
}

// GetByID returns a single listing. No auth required.
// @Summary Get product
// @Tags    products
// @Produce json
// @Param   id path int true "product id"
// @Success 200 {object} product.Product
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseProductID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid product id")
	}
	p, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return productError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

func (h *ProductHandler) parseBody(c *fiber.Ctx) (product.Input, error) {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return product.Input{}, errors.New("invalid JSON payload")
	}
	// The owner comes from the token, never from the payload.
	if req.UserID != nil {
		return product.Input{}, errors.New("userId is not allowed in request body")
	}
	return req.input(), nil
}

// Create publishes a new listing owned by the caller.
// @Summary Create product
// @Tags    products
// @Accept  json
// @Produce json
// @Param   input body productRequest true "product fields"
// @Security BearerAuth
// @Success 201 {object} product.Product
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	identity, ok := jwt.IdentityFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	in, err := h.parseBody(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	p, err := h.uc.Create(c.Context(), identity.UserID, in)
	if err != nil {
		return productError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, p)
}

// Update replaces the editable fields of a listing the caller owns.
// @Summary Update product
// @Tags    products
// @Accept  json
// @Produce json
// @Param   id path int true "product id"
// @Param   input body productRequest true "product fields"
// @Security BearerAuth
// @Success 200 {object} product.Product
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	identity, ok := jwt.IdentityFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := parseProductID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid product id")
	}
	in, err := h.parseBody(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	p, err := h.uc.Update(c.Context(), identity.UserID, id, in)
	if err != nil {
		return productError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// MarkSold flags a listing the caller owns as sold.
// @Summary Mark product sold
// @Tags    products
// @Produce json
// @Param   id path int true "product id"
// @Security BearerAuth
// @Success 200 {object} product.Product
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /products/{id}/sold [patch]
func (h *ProductHandler) MarkSold(c *fiber.Ctx) error {
	identity, ok := jwt.IdentityFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := parseProductID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid product id")
	}
	p, err := h.uc.MarkSold(c.Context(), identity.UserID, id)
	if err != nil {
		return productError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// Delete removes a listing the caller owns.
// @Summary Delete product
// @Tags    products
// @Param   id path int true "product id"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	identity, ok := jwt.IdentityFromCtx(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	id, err := parseProductID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid product id")
	}
	if err := h.uc.Delete(c.Context(), identity.UserID, id); err != nil {
		return productError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}
