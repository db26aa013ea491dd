// utils/http.go - Shared Fiber response helpers
package utils

import (
	"errors"
	"strconv"

	"liturgia/push"
	"liturgia/services"

	"github.com/gofiber/fiber/v2"
)

// JSONError sends {"success": false, "error": message}.
func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// JSONSuccess sends data with "success": true merged in. Non-map data is
// wrapped under "data".
func JSONSuccess(c *fiber.Ctx, status int, data interface{}) error {
	response := fiber.Map{
		"success": true,
	}

	if dataMap, ok := data.(fiber.Map); ok {
		for k, v := range dataMap {
			response[k] = v
		}
	} else if data != nil {
		response["data"] = data
	}

	return c.Status(status).JSON(response)
}

// ServiceError maps service and push errors to responses. Anything it does
// not recognize goes to the app's error handler as a 500.
func ServiceError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	var apiErr *push.APIError

	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   verr.Error(),
			"field":   verr.Field,
		})
	case errors.Is(err, services.ErrNotFound):
		return JSONError(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrConflict):
		return JSONError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, push.ErrNotConfigured):
		return JSONError(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.As(err, &apiErr):
		return JSONError(c, fiber.StatusBadGateway, err.Error())
	}
	return err
}

// ParamID parses a positive numeric route parameter.
func ParamID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// PageFromQuery reads ?page= and ?size=.
func PageFromQuery(c *fiber.Ctx) services.Page {
	return services.Page{
		Number: c.QueryInt("page", 1),
		Size:   c.QueryInt("size", 20),
	}
}
