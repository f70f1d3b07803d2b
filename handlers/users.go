package handlers

import (
	"net/http"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/middleware/jwtauth"
	"github.com/ak-shop/api/models"
	"github.com/ak-shop/api/server"
	"github.com/ak-shop/api/services/users"
	"github.com/labstack/echo/v4"
)

type UsersHandler struct {
	users *users.Service
}

func NewUsersHandler(usersSvc *users.Service) *UsersHandler {
	return &UsersHandler{users: usersSvc}
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=CUSTOMER STAFF ADMIN"`
}

func (h *UsersHandler) List(c echo.Context) error {
	result, err := h.users.List(users.ListParams{
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 20),
		Search: c.QueryParam("search"),
		Role:   c.QueryParam("role"),
	})
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "users retrieved", page{
		Items: result.Items, Total: result.Total, Page: result.Page, Limit: result.Limit,
	})
}

func (h *UsersHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Param("id"))
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "user retrieved", user)
}

func (h *UsersHandler) SetRole(c echo.Context) error {
	var req setRoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if c.Param("id") == jwtauth.GetUserID(c) {
		return apperr.BadRequest("you cannot change your own role")
	}

	user, err := h.users.SetRole(c.Param("id"), models.Role(req.Role))
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "role updated", user)
}

func (h *UsersHandler) Delete(c echo.Context) error {
	if c.Param("id") == jwtauth.GetUserID(c) {
		return apperr.BadRequest("you cannot delete your own account")
	}

	if err := h.users.Delete(c.Param("id")); err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "user deleted", nil)
}
