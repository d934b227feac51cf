package httpapi

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"

	"github.com/vinyasa/studio/auth"
	"github.com/vinyasa/studio/middleware/jwtware"
)

// Deps is everything the HTTP surface needs wired in.
type Deps struct {
	Auther   auth.Authenticator
	Tokens   jwtware.TokenValidator
	Users    UserStore
	Sessions SessionStore
	Teachers TeacherStore
	Roster   RosterManager
	Config   auth.Config
	Logger   auth.Logger
}

// Register mounts every route under /api. The identity filter runs twice:
// once for the whole app in optional mode, so any handler can see a
// principal when credentials are present, and once in strict mode in front
// of the protected group, where bad credentials become a 401 instead of an
// anonymous request. Login and registration stay outside the strict group.
func Register(app *fiber.App, deps Deps) {
	authCtrl := &AuthController{Auther: deps.Auther, Users: deps.Users, Logger: deps.Logger}
	sessionCtrl := &SessionController{Sessions: deps.Sessions, Roster: deps.Roster, Logger: deps.Logger}
	teacherCtrl := &TeacherController{Teachers: deps.Teachers}
	userCtrl := &UserController{Users: deps.Users, Logger: deps.Logger}

	loader := identityLoader(deps.Auther)

	app.Use(jwtware.New(jwtware.Config{
		TokenValidator: deps.Tokens,
		IdentityLoader: loader,
		ContextKey:     deps.Config.GetContextKey(),
		TokenLookup:    deps.Config.GetTokenLookup(),
		AuthScheme:     deps.Config.GetAuthScheme(),
		Optional:       true,
	}))

	api := app.Group("/api")

	api.Post("/auth/login", authCtrl.Login)
	api.Post("/auth/register", authCtrl.Register)

	api.Use(jwtware.New(jwtware.Config{
		TokenValidator: deps.Tokens,
		IdentityLoader: loader,
		ContextKey:     deps.Config.GetContextKey(),
		TokenLookup:    deps.Config.GetTokenLookup(),
		AuthScheme:     deps.Config.GetAuthScheme(),
		Filter: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/auth/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return auth.ErrTokenMalformed
			}
			var rich *goerrors.Error
			if goerrors.As(err, &rich) && rich.Category == goerrors.CategoryAuth {
				return err
			}
			// a token that validates but no longer resolves to an
			// account still reads as an authentication failure
			return goerrors.Wrap(err, goerrors.CategoryAuth, "authentication required").
				WithCode(goerrors.CodeUnauthorized).
				WithTextCode("UNAUTHENTICATED")
		},
	}))

	api.Get("/session", sessionCtrl.List)
	api.Get("/session/:id", sessionCtrl.Get)
	api.Post("/session", sessionCtrl.Create)
	api.Put("/session/:id", sessionCtrl.Update)
	api.Delete("/session/:id", sessionCtrl.Delete)
	api.Post("/session/:id/participate/:userId", sessionCtrl.Participate)
	api.Delete("/session/:id/participate/:userId", sessionCtrl.Unparticipate)

	api.Get("/teacher", teacherCtrl.List)
	api.Get("/teacher/:id", teacherCtrl.Get)

	api.Get("/user/:id", userCtrl.Get)
	api.Delete("/user/:id", userCtrl.Delete)
}

// identityLoader reloads the principal on every request, so revoked or
// deleted accounts stop authenticating as soon as the record is gone even
// if their token is still within its lifetime.
func identityLoader(auther auth.Authenticator) jwtware.IdentityLoader {
	return func(ctx context.Context, subject string) (*auth.Principal, error) {
		identity, err := auther.IdentityFromSubject(ctx, subject)
		if err != nil {
			return nil, err
		}
		return auth.PrincipalFromIdentity(identity), nil
	}
}
