package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"

	"github.com/vinyasa/studio/auth"
	"github.com/vinyasa/studio/store"
)

// AuthController serves login and registration.
type AuthController struct {
	Auther auth.Authenticator
	Users  UserStore
	Logger auth.Logger
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse carries the freshly minted token plus the identity it
// belongs to, so clients never need a second round trip after login.
type LoginResponse struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
}

func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to parse body")
	}

	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	token, identity, err := a.Auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		a.Logger.Info("login rejected for %s", payload.Email)
		return err
	}

	return c.JSON(LoginResponse{
		Token:     token,
		Type:      "Bearer",
		ID:        identity.ID(),
		Email:     identity.Email(),
		FirstName: identity.FirstName(),
		LastName:  identity.LastName(),
		Admin:     identity.IsAdmin(),
	})
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// Validate will validate the payload
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

func (a *AuthController) Register(c *fiber.Ctx) error {
	payload := new(RegisterRequest)

	if err := c.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to parse body")
	}

	if err := payload.Validate(); err != nil {
		return validationError(err)
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		return err
	}

	user := &store.User{
		Email:        payload.Email,
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		PasswordHash: hash,
	}

	created, err := a.Users.Register(c.UserContext(), user)
	if err != nil {
		return err
	}

	a.Logger.Info("registered user %s", created.ID)

	return c.JSON(fiber.Map{"message": "User registered successfully!"})
}
