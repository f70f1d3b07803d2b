package handlers

import (
	"net/http"

	"github.com/ak-shop/api/server"
	"github.com/ak-shop/api/services/catalog"
	"github.com/labstack/echo/v4"
)

type AttributeHandler struct {
	attributes *catalog.AttributeService
}

func NewAttributeHandler(attributes *catalog.AttributeService) *AttributeHandler {
	return &AttributeHandler{attributes: attributes}
}

type createAttributeRequest struct {
	Name   string   `json:"name" validate:"required,max=100"`
	Values []string `json:"values" validate:"dive,required,max=100"`
}

type addValueRequest struct {
	Value string `json:"value" validate:"required,max=100"`
}

func (h *AttributeHandler) List(c echo.Context) error {
	attributes, err := h.attributes.List()
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "attributes retrieved", attributes)
}

func (h *AttributeHandler) Get(c echo.Context) error {
	attribute, err := h.attributes.Get(c.Param("id"))
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "attribute retrieved", attribute)
}

func (h *AttributeHandler) Create(c echo.Context) error {
	var req createAttributeRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	attribute, err := h.attributes.Create(req.Name, req.Values)
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusCreated, "attribute created", attribute)
}

func (h *AttributeHandler) AddValue(c echo.Context) error {
	var req addValueRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	value, err := h.attributes.AddValue(c.Param("id"), req.Value)
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusCreated, "attribute value added", value)
}

func (h *AttributeHandler) Delete(c echo.Context) error {
	if err := h.attributes.Delete(c.Param("id")); err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "attribute deleted", nil)
}

func (h *AttributeHandler) DeleteMany(c echo.Context) error {
	var req idsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	deleted, err := h.attributes.DeleteMany(req.IDs)
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "attributes deleted", map[string]int64{"deleted": deleted})
}
