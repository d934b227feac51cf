package jwtware_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinyasa/studio/auth"
	"github.com/vinyasa/studio/middleware/jwtware"
)

var signingKey = []byte("test-signing-key")

type testIdentity struct {
	id    string
	admin bool
}

func (t testIdentity) ID() string        { return t.id }
func (t testIdentity) Email() string     { return "yoga@studio.test" }
func (t testIdentity) FirstName() string { return "Margot" }
func (t testIdentity) LastName() string  { return "DELAHAYE" }
func (t testIdentity) IsAdmin() bool     { return t.admin }

func tokenService() auth.TokenService {
	return auth.NewTokenService(signingKey, 1, "studio", nil, nil)
}

func signedToken(t *testing.T, id string) string {
	t.Helper()
	token, err := tokenService().Generate(testIdentity{id: id})
	require.NoError(t, err)
	return token
}

// testApp wires the middleware in front of a handler that reports whether
// a principal was bound to the request context.
func testApp(cfg jwtware.Config) *fiber.App {
	app := fiber.New()
	app.Use(jwtware.New(cfg))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		if p, ok := auth.FromContext(c.UserContext()); ok {
			return c.SendString(p.UserID)
		}
		return c.SendString("anonymous")
	})
	return app
}

func TestMiddlewareBindsPrincipal(t *testing.T) {
	app := testApp(jwtware.Config{TokenValidator: tokenService()})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signedToken(t, "user-42"))

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "user-42", readBody(t, res))
}

func TestMiddlewareRejectsBadTokens(t *testing.T) {
	app := testApp(jwtware.Config{TokenValidator: tokenService()})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := auth.NewTokenService([]byte("some-other-key"), 1, "studio", nil, nil)
		token, err := other.Generate(testIdentity{id: "user-42"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &auth.JWTClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "studio",
				Subject:   "user-42",
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		svc := tokenService().(*auth.TokenServiceImpl)
		token, err := svc.SignClaims(claims)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer not.a.token")

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})
}

func TestMiddlewareOptionalMode(t *testing.T) {
	app := testApp(jwtware.Config{
		TokenValidator: tokenService(),
		Optional:       true,
	})

	t.Run("no credentials pass through as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "anonymous", readBody(t, res))
	})

	t.Run("invalid token passes through as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer bogus")

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "anonymous", readBody(t, res))
	})

	t.Run("valid token still binds the principal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signedToken(t, "user-7"))

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "user-7", readBody(t, res))
	})
}

func TestMiddlewareIdentityLoader(t *testing.T) {
	t.Run("loads the full principal", func(t *testing.T) {
		app := testApp(jwtware.Config{
			TokenValidator: tokenService(),
			IdentityLoader: func(ctx context.Context, subject string) (*auth.Principal, error) {
				return &auth.Principal{UserID: subject, EmailAddr: "yoga@studio.test"}, nil
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signedToken(t, "user-9"))

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "user-9", readBody(t, res))
	})

	t.Run("rejects tokens for deleted accounts", func(t *testing.T) {
		app := testApp(jwtware.Config{
			TokenValidator: tokenService(),
			IdentityLoader: func(ctx context.Context, subject string) (*auth.Principal, error) {
				return nil, auth.ErrIdentityNotFound
			},
		})

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signedToken(t, "user-9"))

		res, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})
}

func TestMiddlewareFilter(t *testing.T) {
	app := testApp(jwtware.Config{
		TokenValidator: tokenService(),
		Filter: func(c *fiber.Ctx) bool {
			return c.Path() == "/whoami"
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "anonymous", readBody(t, res))
}

func TestGetExtractors(t *testing.T) {
	extractors := jwtware.GetExtractors("header:Authorization,query:auth_token")
	assert.Len(t, extractors, 2)
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body)
}
