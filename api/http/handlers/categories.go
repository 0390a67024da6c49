package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vkuzn/unimarket/api/http/presenter"
	"github.com/vkuzn/unimarket/pkg/category"
)

type CategoryHandler struct {
	uc category.UseCase
}

func NewCategoryHandler(uc category.UseCase) *CategoryHandler { return &CategoryHandler{uc: uc} }

// List returns the category directory sorted by name.
// @Summary List categories
// @Tags    categories
// @Produce json
// @Success 200 {array} category.Category
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.uc.List(c.Context())
	if err != nil {
		return presenter.Internal(c, err)
	}
	return presenter.JSON(c, http.StatusOK, categories)
}
