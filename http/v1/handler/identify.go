package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	identifyentity "github.com/carlosabalde/wurfl-go/internal/entities/identify"
	identifyservice "github.com/carlosabalde/wurfl-go/internal/services/identify"
	"github.com/carlosabalde/wurfl-go/internal/constants"
	"github.com/carlosabalde/wurfl-go/pkg/response"
)

// Identify handles POST /v1/identify: matches the given user_agent against
// the handler chain and returns the resolved device record.
func Identify(c echo.Context) error {
	var req identifyentity.Request
	if err := c.Bind(&req); err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeInvalidJSON, "Invalid JSON payload")
	}
	if err := c.Validate(&req); err != nil {
		return response.FailWithCodeAndMessage(c, constants.CodeValidationFailed, err.Error())
	}

	return response.Success(c, identifyservice.Identify(req.UserAgent))
}

// GetDevice handles GET /v1/devices/:id: looks up a registered device
// record directly by id.
func GetDevice(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return response.FailWithCodeAndMessage(c, constants.CodeMissingParameter, "id is required")
	}

	dev, err := identifyservice.Find(id)
	if err != nil {
		return response.Fail(c, http.StatusNotFound, constants.CodeResourceNotFound, "Device not found")
	}
	return response.Success(c, dev)
}
