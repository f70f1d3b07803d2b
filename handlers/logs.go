package handlers

import (
	"net/http"
	"time"

	"github.com/ak-shop/api/apperr"
	"github.com/ak-shop/api/server"
	"github.com/ak-shop/api/services/logs"
	"github.com/labstack/echo/v4"
)

type LogsHandler struct {
	logs *logs.Service
}

func NewLogsHandler(logsSvc *logs.Service) *LogsHandler {
	return &LogsHandler{logs: logsSvc}
}

func (h *LogsHandler) List(c echo.Context) error {
	result, err := h.logs.List(logs.ListParams{
		Page:      queryInt(c, "page", 1),
		Limit:     queryInt(c, "limit", 50),
		Method:    c.QueryParam("method"),
		MinStatus: queryInt(c, "minStatus", 0),
		Since:     queryTime(c, "since"),
		Until:     queryTime(c, "until"),
	})
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "request logs retrieved", page{
		Items: result.Items, Total: result.Total, Page: result.Page, Limit: result.Limit,
	})
}

func (h *LogsHandler) Purge(c echo.Context) error {
	olderThan := queryTime(c, "olderThan")
	if olderThan == nil {
		fallback := time.Now().AddDate(0, 0, -30)
		olderThan = &fallback
	}
	if olderThan.After(time.Now()) {
		return apperr.BadRequest("olderThan must be in the past")
	}

	purged, err := h.logs.Purge(*olderThan)
	if err != nil {
		return err
	}
	return server.Respond(c, http.StatusOK, "request logs purged", map[string]int64{"purged": purged})
}
