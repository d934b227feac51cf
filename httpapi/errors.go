package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/vinyasa/studio/auth"
)

// ErrorEnvelope is the JSON body every failed request gets.
type ErrorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ErrInvalidID covers path parameters that do not parse as UUIDs.
var ErrInvalidID = goerrors.New("identifier is not a valid UUID", goerrors.CategoryBadInput).
	WithCode(goerrors.CodeBadRequest).
	WithTextCode("INVALID_ID")

// ErrorHandler renders any error a handler or middleware returns. Rich
// errors carry their own status code and text code; everything else is a
// 500 with the detail kept out of the response.
func ErrorHandler(logger auth.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorEnvelope{Error: fiberErr.Message})
		}

		var rich *goerrors.Error
		if goerrors.As(err, &rich) {
			status := statusFromRichError(rich)
			if status >= fiber.StatusInternalServerError {
				logger.Error("request failed: %v", err)
			}
			return c.Status(status).JSON(ErrorEnvelope{
				Error: rich.Message,
				Code:  rich.TextCode,
			})
		}

		logger.Error("unhandled request error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorEnvelope{
			Error: "internal server error",
		})
	}
}

func statusFromRichError(err *goerrors.Error) int {
	if err.Code > 0 {
		return err.Code
	}

	switch err.Category {
	case goerrors.CategoryAuth:
		return fiber.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return fiber.StatusForbidden
	case goerrors.CategoryNotFound:
		return fiber.StatusNotFound
	case goerrors.CategoryConflict:
		return fiber.StatusConflict
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// validationError wraps an ozzo validation failure into the 400 envelope.
func validationError(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
		WithCode(goerrors.CodeBadRequest).
		WithTextCode("VALIDATION_ERROR")
}

// parseID parses a UUID path parameter, mapping failures to a 400.
func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, ErrInvalidID
	}
	return id, nil
}
