package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vinyasa/studio/auth"
)

// UserController serves user lookup and account deletion.
type UserController struct {
	Users  UserStore
	Logger auth.Logger
}

func (u *UserController) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	user, err := u.Users.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(user)
}

// Delete removes an account. Callers can only delete themselves unless
// they are an admin.
func (u *UserController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	// missing accounts read as not found for everyone, the ownership
	// check only runs against records that exist
	if _, err := u.Users.FindByID(c.UserContext(), id); err != nil {
		return err
	}

	if err := auth.AuthorizeContext(c.UserContext(), id.String()); err != nil {
		return err
	}

	if err := u.Users.DeleteByID(c.UserContext(), id); err != nil {
		return err
	}

	u.Logger.Info("deleted user %s", id)

	return c.SendStatus(fiber.StatusNoContent)
}
