package handlers

import (
	"net/http"

	"github.com/ak-shop/api/server"
	"github.com/ak-shop/api/services/catalog"
	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	products *catalog.ProductService
}

func NewProductHandler(products *catalog.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type variantAttributeRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Value string `json:"value" validate:"required,max=100"`
}

type variantRequest struct {
	SKU           string                    `json:"sku" validate:"required,max=100"`
	Price         float64                   `json:"price" validate:"required,gt=0"`
	StockQuantity int                       `json:"stockQuantity" validate:"gte=0"`
	Attributes    []variantAttributeRequest `json:"attributes" validate:"dive"`
}

type createProductRequest struct {
	Name          string           `json:"name" validate:"required,max=200"`
	Slug          string           `json:"slug" validate:"required,max=200"`
	Description   string           `json:"description"`
	CategoryID    string           `json:"categoryId" validate:"required"`
	MediaIDs      []string         `json:"mediaIds"`
	CollectionIDs []string         `json:"collectionIds"`
	Variants      []variantRequest `json:"variants" validate:"required,min=1,dive"`
}

type updateProductRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=200"`
	Slug        *string   `json:"slug" validate:"omitempty,max=200"`
	Description *string   `json:"description"`
	CategoryID  *string   `json:"categoryId"`
	MediaIDs    *[]string `json:"mediaIds"`
}

type idsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

func variantInputs(reqs []variantRequest) []catalog.VariantInput {
	variants := make([]catalog.VariantInput, 0, len(reqs))
	for _, v := range reqs {
		attrs := make([]catalog.VariantAttributeInput, 0, len(v.Attributes))
		for _, a := range v.Attributes {
			attrs = append(attrs, catalog.VariantAttributeInput{Name: a.Name, Value: a.Value})
		}
		variants = append(variants, catalog.VariantInput{
			SKU:           v.SKU,
			Price:         v.Price,
			StockQuantity: v.StockQuantity,
			Attributes:    attrs,
		})
	}
	return variants
}

func (h *ProductHandler) List(c echo.Context) error {
	result, err := h.products.List(catalog.ListProductsParams{
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 20),
		Search:     c.QueryParam("search"),
		CategoryID: c.QueryParam("categoryId"),
		MinPrice:   queryFloat(c, "minPrice"),
		MaxPrice:   queryFloat(c, "maxPrice"),
		Sort:       c.QueryParam("sort"),
	})
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "products retrieved", page{
		Items: result.Items, Total: result.Total, Page: result.Page, Limit: result.Limit,
	})
}

func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.products.Get(c.Param("id"))
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "product retrieved", product)
}

func (h *ProductHandler) GetBySlug(c echo.Context) error {
	product, err := h.products.GetBySlug(c.Param("slug"))
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "product retrieved", product)
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	product, err := h.products.Create(catalog.ProductInput{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		MediaIDs:      req.MediaIDs,
		CollectionIDs: req.CollectionIDs,
		Variants:      variantInputs(req.Variants),
	})
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusCreated, "product created", product)
}

func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	product, err := h.products.Update(c.Param("id"), catalog.ProductUpdate{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		MediaIDs:    req.MediaIDs,
	})
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "product updated", product)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.products.Delete(c.Param("id")); err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "product deleted", nil)
}

func (h *ProductHandler) DeleteMany(c echo.Context) error {
	var req idsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	deleted, err := h.products.DeleteMany(req.IDs)
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "products deleted", map[string]int64{"deleted": deleted})
}
