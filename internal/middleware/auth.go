package middleware

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"famledger/internal/auth"
	apperrors "famledger/internal/errors"
	"famledger/internal/service"
)

// JWT verifies the bearer access token and stores its claims under ContextToken.
func JWT(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  ContextToken,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var missing *echojwt.TokenExtractionError
			if errors.As(err, &missing) {
				return reject(http.StatusUnauthorized, "No authentication token provided", "TOKEN_MISSING")
			}
			return reject(http.StatusUnauthorized, "Invalid token", "INVALID_TOKEN")
		},
	})
}

// Authenticate runs after JWT. It refuses revoked tokens and tokens whose user no longer
// exists, and stores the user under ContextUser.
func Authenticate(users service.UserService, tokens auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := Claims(c)
			if claims == nil {
				return reject(http.StatusUnauthorized, "Invalid token", "INVALID_TOKEN")
			}
			ctx := c.Request().Context()

			if claims.ID != "" {
				revoked, err := tokens.IsAccessTokenBlacklisted(ctx, claims.ID)
				if err != nil {
					return AsHTTPError(err)
				}
				if revoked {
					return reject(http.StatusUnauthorized, "Token has been revoked", "TOKEN_REVOKED")
				}
			}

			user, err := users.GetUser(ctx, claims.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrUserNotFound) {
					return reject(http.StatusUnauthorized, "User not found", "INVALID_TOKEN")
				}
				return AsHTTPError(err)
			}

			c.Set(ContextUser, user)
			return next(c)
		}
	}
}
