package httpapi

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/vinyasa/studio/auth"
	"github.com/vinyasa/studio/store"
)

// SessionController serves session CRUD and roster mutations.
type SessionController struct {
	Sessions SessionStore
	Roster   RosterManager
	Logger   auth.Logger
}

// SessionPayload is the create and update payload
type SessionPayload struct {
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	TeacherID   string    `json:"teacher_id"`
	Description string    `json:"description"`
}

// Validate will run validation rules
func (p SessionPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Date, validation.Required),
		validation.Field(&p.Description, validation.Length(0, 2000)),
	)
}

func (p SessionPayload) toModel() (*store.Session, error) {
	session := &store.Session{
		Name:        p.Name,
		Date:        p.Date,
		Description: p.Description,
	}

	if p.TeacherID != "" {
		teacherID, err := uuid.Parse(p.TeacherID)
		if err != nil {
			return nil, ErrInvalidID
		}
		session.TeacherID = &teacherID
	}

	return session, nil
}

func (s *SessionController) List(c *fiber.Ctx) error {
	sessions, err := s.Sessions.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(sessions)
}

func (s *SessionController) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	session, err := s.Sessions.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(session)
}

func (s *SessionController) Create(c *fiber.Ctx) error {
	payload := new(SessionPayload)

	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to parse body")
	}

	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	session, err := payload.toModel()
	if err != nil {
		return err
	}

	created, err := s.Sessions.Create(c.UserContext(), session)
	if err != nil {
		return err
	}

	s.Logger.Info("created session %s", created.ID)

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *SessionController) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	payload := new(SessionPayload)
	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to parse body")
	}

	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	session, err := payload.toModel()
	if err != nil {
		return err
	}
	session.ID = id

	updated, err := s.Sessions.Update(c.UserContext(), session)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// Delete removes a session and its roster. Admin only.
func (s *SessionController) Delete(c *fiber.Ctx) error {
	principal, ok := auth.FromContext(c.UserContext())
	if !ok || !principal.Admin {
		return auth.ErrNotResourceOwner
	}

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if _, err := s.Sessions.FindByID(c.UserContext(), id); err != nil {
		return err
	}

	if err := s.Sessions.DeleteByID(c.UserContext(), id); err != nil {
		return err
	}

	s.Logger.Info("deleted session %s", id)

	return c.SendStatus(fiber.StatusNoContent)
}

// Participate adds a user to the session roster. Users can only book for
// themselves unless they are an admin.
func (s *SessionController) Participate(c *fiber.Ctx) error {
	sessionID, userID, err := s.rosterParams(c)
	if err != nil {
		return err
	}

	return s.Roster.AddParticipant(c.UserContext(), sessionID, userID)
}

// Unparticipate removes a user from the session roster, same guard as
// Participate.
func (s *SessionController) Unparticipate(c *fiber.Ctx) error {
	sessionID, userID, err := s.rosterParams(c)
	if err != nil {
		return err
	}

	return s.Roster.RemoveParticipant(c.UserContext(), sessionID, userID)
}

func (s *SessionController) rosterParams(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	sessionID, err := parseID(c, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	userID, err := parseID(c, "userId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	if err := auth.AuthorizeContext(c.UserContext(), userID.String()); err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	return sessionID, userID, nil
}
