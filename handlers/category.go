package handlers

import (
	"net/http"

	"github.com/ak-shop/api/server"
	"github.com/ak-shop/api/services/catalog"
	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	categories *catalog.CategoryService
}

func NewCategoryHandler(categories *catalog.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type categoryRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Slug     string  `json:"slug" validate:"required,max=100"`
	ParentID *string `json:"parentId" validate:"omitempty,uuid"`
}

func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categories.List()
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "categories retrieved", categories)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	category, err := h.categories.Get(c.Param("id"))
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "category retrieved", category)
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	category, err := h.categories.Create(catalog.CategoryInput{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.ParentID,
	})
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusCreated, "category created", category)
}

func (h *CategoryHandler) Update(c echo.Context) error {
	var req categoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	category, err := h.categories.Update(c.Param("id"), catalog.CategoryInput{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.ParentID,
	})
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "category updated", category)
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.categories.Delete(c.Param("id")); err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "category deleted", nil)
}

func (h *CategoryHandler) DeleteMany(c echo.Context) error {
	var req idsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	deleted, err := h.categories.DeleteMany(req.IDs)
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "categories deleted", map[string]int64{"deleted": deleted})
}
