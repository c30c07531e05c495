package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// StatusError lets service-layer errors carry their own HTTP status without
// the middleware importing the service package.
type StatusError interface {
	error
	StatusCode() int
}

// ErrorHandlerMiddleware converts errors returned by handlers into the
// uniform JSON envelope. Raw error text is never leaked for 500s.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		var statusErr StatusError
		if errors.As(err, &statusErr) {
			return ctx.Status(statusErr.StatusCode()).JSON(ErrorResponse(statusErr.Error()))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
	}
}
