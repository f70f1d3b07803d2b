package handlers

import (
	"net/http"

	"github.com/ak-shop/api/server"
	"github.com/ak-shop/api/services/collection"
	"github.com/labstack/echo/v4"
)

type CollectionHandler struct {
	collections *collection.Service
}

func NewCollectionHandler(collections *collection.Service) *CollectionHandler {
	return &CollectionHandler{collections: collections}
}

type collectionRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,max=100"`
	Description string `json:"description"`
}

type addProductsRequest struct {
	ProductIDs []string `json:"productIds" validate:"required,min=1"`
}

func (h *CollectionHandler) List(c echo.Context) error {
	result, err := h.collections.List(collection.ListParams{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	})
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "collections retrieved", page{
		Items: result.Items, Total: result.Total, Page: result.Page, Limit: result.Limit,
	})
}

func (h *CollectionHandler) Get(c echo.Context) error {
	result, err := h.collections.Get(c.Param("id"))
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "collection retrieved", result)
}

func (h *CollectionHandler) Create(c echo.Context) error {
	var req collectionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.collections.Create(collection.CollectionInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusCreated, "collection created", result)
}

func (h *CollectionHandler) Update(c echo.Context) error {
	var req collectionRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.collections.Update(c.Param("id"), collection.CollectionInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "collection updated", result)
}

func (h *CollectionHandler) Delete(c echo.Context) error {
	if err := h.collections.Delete(c.Param("id")); err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "collection deleted", nil)
}

func (h *CollectionHandler) AddProducts(c echo.Context) error {
	var req addProductsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.collections.AddProducts(c.Param("id"), req.ProductIDs)
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "products added to collection", result)
}

func (h *CollectionHandler) RemoveProduct(c echo.Context) error {
	if err := h.collections.RemoveProduct(c.Param("id"), c.Param("productId")); err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "product removed from collection", nil)
}
