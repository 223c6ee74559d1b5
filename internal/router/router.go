package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"famledger/internal/auth"
	"famledger/internal/config"
	apperrors "famledger/internal/errors"
	"famledger/internal/handler"
	"famledger/internal/logging"
	"famledger/internal/middleware"
	"famledger/internal/service"
	"famledger/internal/validation"
)

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Auth          *handler.AuthHandler
	Family        *handler.FamilyHandler
	User          *handler.UserHandler
	Expense       *handler.ExpenseHandler
	Income        *handler.IncomeHandler
	FutureExpense *handler.FutureExpenseHandler
	Category      *handler.CategoryHandler
	Analytics     *handler.AnalyticsHandler
	Health        *handler.HealthHandler
}

// Deps carries what the gates and the ambient middleware need.
type Deps struct {
	Logger     *slog.Logger
	JWT        *auth.JWTService
	Tokens     auth.TokenStoreInterface
	Users      service.UserService
	Families   service.FamilyService
	Metrics    *middleware.Metrics
	Gatherer   prometheus.Gatherer
	BodyLimit  string
	EnableDocs bool
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, deps Deps, h Handlers) {
	e.HideBanner = true
	e.Validator = validation.New()
	e.HTTPErrorHandler = ErrorHandler(deps.Logger)

	bodyLimit := deps.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "1M"
	}

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomw.Recover())
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomw.BodyLimit(bodyLimit))

	e.GET("/healthz", h.Health.Health)
	if deps.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	if deps.EnableDocs {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	bearer := []echo.MiddlewareFunc{
		middleware.JWT(deps.JWT),
		middleware.Authenticate(deps.Users, deps.Tokens),
	}
	member := append(bearer[:len(bearer):len(bearer)], middleware.FamilyMember(deps.Families))
	admin := middleware.FamilyAdmin()

	api := e.Group("/api")
	api.GET("/health", h.Health.Health)

	// Public routes
	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.GET("/me", h.Auth.Me, bearer...)
	authGroup.POST("/logout", h.Auth.Logout, bearer...)

	// Families
	families := api.Group("/families", bearer...)
	families.POST("", h.Family.CreateFamily)
	families.GET("", h.Family.ListFamilies)

	family := api.Group("/families/:familyId", member...)
	family.GET("", h.Family.GetFamily)
	family.DELETE("", h.Family.DeleteFamily, admin)
	family.GET("/members", h.Family.ListMembers)
	family.POST("/members", h.Family.AddMember, admin)
	family.DELETE("/members/:userId", h.Family.RemoveMember, admin)
	family.POST("/members/:userId/reset-password", h.User.ResetPassword, admin)
	family.GET("/users", h.User.ListFamilyUsers, admin)

	// Ledger
	expenses := api.Group("/expenses/:familyId", member...)
	expenses.POST("", h.Expense.CreateExpense)
	expenses.GET("", h.Expense.ListExpenses)
	expenses.GET("/:expenseId", h.Expense.GetExpense)
	expenses.PUT("/:expenseId", h.Expense.UpdateExpense)
	expenses.DELETE("/:expenseId", h.Expense.DeleteExpense)

	income := api.Group("/income/:familyId", member...)
	income.POST("", h.Income.CreateIncome)
	income.GET("", h.Income.ListIncome)
	income.GET("/:incomeId", h.Income.GetIncome)
	income.PUT("/:incomeId", h.Income.UpdateIncome)
	income.DELETE("/:incomeId", h.Income.DeleteIncome)

	future := api.Group("/future-expenses/:familyId", member...)
	future.POST("", h.FutureExpense.CreateFutureExpense)
	future.GET("", h.FutureExpense.ListFutureExpenses)
	future.GET("/total", h.FutureExpense.MonthlyTotal)
	future.GET("/:futureExpenseId", h.FutureExpense.GetFutureExpense)
	future.PUT("/:futureExpenseId", h.FutureExpense.UpdateFutureExpense)
	future.DELETE("/:futureExpenseId", h.FutureExpense.DeleteFutureExpense)

	categories := api.Group("/categories/:familyId", member...)
	categories.GET("", h.Category.ListCategories)
	categories.POST("", h.Category.CreateCategory, admin)
	categories.PUT("/:categoryId", h.Category.UpdateCategory, admin)
	categories.DELETE("/:categoryId", h.Category.DeleteCategory, admin)

	api.GET("/analytics/:familyId", h.Analytics.GetAnalytics, member...)

	// Account
	users := api.Group("/users", bearer...)
	users.PUT("/profile", h.User.UpdateProfile)
	users.POST("/update-password", h.User.UpdatePassword)
}

// ErrorHandler renders every error as an ErrorResponse (or ValidationErrorResponse) body.
// Server errors are logged with their cause and answered with a generic message.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logging.Component(logger, logging.ComponentHTTP)
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			he = middleware.AsHTTPError(err)
		}

		var body interface{}
		switch msg := he.Message.(type) {
		case apperrors.ErrorResponse, apperrors.ValidationErrorResponse:
			body = msg
		case string:
			body = apperrors.ErrorResponse{Error: msg}
		default:
			body = apperrors.ErrorResponse{Error: http.StatusText(he.Code)}
		}

		if he.Code >= http.StatusInternalServerError {
			cause := err
			if he.Internal != nil {
				cause = he.Internal
			}
			logger.ErrorContext(c.Request().Context(), "request failed",
				logging.FieldRequestID, c.Response().Header().Get(echo.HeaderXRequestID),
				logging.FieldMethod, c.Request().Method,
				logging.FieldRoute, c.Path(),
				logging.FieldError, cause.Error(),
			)
			if _, ok := body.(apperrors.ErrorResponse); ok && he.Code == http.StatusInternalServerError {
				body = apperrors.ErrorResponse{Error: "internal server error", Code: "INTERNAL_ERROR"}
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(he.Code)
		} else {
			writeErr = c.JSON(he.Code, body)
		}
		if writeErr != nil {
			logger.WarnContext(c.Request().Context(), "write error response", logging.FieldError, writeErr.Error())
		}
	}
}
