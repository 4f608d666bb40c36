package router

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"staffdesk/internal/auth"
	"staffdesk/internal/config"
	"staffdesk/internal/errors"
	"staffdesk/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	employeeHandler *handler.EmployeeHandler,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Stored employee images are served statically.
	e.Static("/uploads", cfg.UploadDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)

	// Secured routes. A missing Authorization header is a 403, any
	// invalid, expired or revoked token a 401.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			if claims.ID != "" {
				revoked, _ := tokenStore.IsTokenBlacklisted(c.Request().Context(), claims.ID)
				if revoked {
					return nil, errors.ErrInvalidToken
				}
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if stderrors.Is(err, echojwt.ErrJWTMissing) {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrNoToken.Error())
			}
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrInvalidToken.Error())
		},
	}))

	secured.POST("/auth/logout", authHandler.Logout)

	// Employee routes
	secured.GET("/employees", employeeHandler.List)
	secured.GET("/employees/:id", employeeHandler.Get)
	secured.POST("/employees", employeeHandler.Create)
	secured.PUT("/employees/:id", employeeHandler.Update)
	secured.DELETE("/employees/:id", employeeHandler.Delete)
	secured.PATCH("/employees/:id/toggle-status", employeeHandler.ToggleStatus)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
