package server

import "github.com/labstack/echo/v4"

// Envelope is the uniform response body for every endpoint.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Result  any               `json:"result,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func Respond(c echo.Context, status int, message string, result any) error {
	return c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Result:  result,
	})
}

func RespondError(c echo.Context, status int, message string, fields map[string]string) error {
	return c.JSON(status, Envelope{
		Success: false,
		Message: message,
		Errors:  fields,
	})
}
