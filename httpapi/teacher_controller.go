package httpapi

import (
	"github.com/gofiber/fiber/v2"
)

// TeacherController serves the read-only instructor directory.
type TeacherController struct {
	Teachers TeacherStore
}

func (t *TeacherController) List(c *fiber.Ctx) error {
	teachers, err := t.Teachers.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(teachers)
}

func (t *TeacherController) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	teacher, err := t.Teachers.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(teacher)
}
