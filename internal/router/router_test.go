package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"famledger/internal/auth"
	"famledger/internal/config"
	"famledger/internal/handler"
	"famledger/internal/logging"
	"famledger/internal/middleware"
	"famledger/internal/model"
	"famledger/internal/repository"
	"famledger/internal/service"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gormDB.AutoMigrate(model.Tables()...))

	now := func() time.Time { return time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC) }
	userRepo := repository.NewUserRepository(gormDB)
	familyRepo := repository.NewFamilyRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	futureRepo := repository.NewFutureExpenseRepository(gormDB, now)
	_, err = categoryRepo.SeedDefaults(context.Background(), model.DefaultCategories)
	require.NoError(t, err)

	jwtService := auth.NewJWTService("test-secret", time.Minute, time.Hour)
	tokenStore := auth.NewTokenStore(nil)
	userService := service.NewUserService(userRepo, familyRepo, nil)
	categoryService := service.NewCategoryService(categoryRepo, nil)
	familyService := service.NewFamilyService(familyRepo, userRepo, categoryService)

	reg := prometheus.NewRegistry()
	e := echo.New()
	Register(e, &config.Config{CORSOrigins: []string{"*"}}, Deps{
		Logger:   logging.New(logging.Config{Output: io.Discard}),
		JWT:      jwtService,
		Tokens:   tokenStore,
		Users:    userService,
		Families: familyService,
		Metrics:  middleware.NewMetrics(reg),
		Gatherer: reg,
	}, Handlers{
		Auth:          handler.NewAuthHandler(service.NewAuthService(userRepo, jwtService, tokenStore)),
		Family:        handler.NewFamilyHandler(familyService),
		User:          handler.NewUserHandler(userService),
		Expense:       handler.NewExpenseHandler(service.NewExpenseService(repository.NewExpenseRepository(gormDB), categoryRepo)),
		Income:        handler.NewIncomeHandler(service.NewIncomeService(repository.NewIncomeRepository(gormDB))),
		FutureExpense: handler.NewFutureExpenseHandler(service.NewFutureExpenseService(futureRepo, now)),
		Category:      handler.NewCategoryHandler(categoryService),
		Analytics:     handler.NewAnalyticsHandler(service.NewAnalyticsService(repository.NewAnalyticsRepository(gormDB), futureRepo, now)),
		Health:        handler.NewHealthHandler(gormDB, nil),
	})
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

type authBody struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

func register(t *testing.T, e *echo.Echo, name, email, username string) authBody {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "username": username, "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out authBody
	decode(t, rec, &out)
	return out
}

func createFamily(t *testing.T, e *echo.Echo, token, name string) model.Family {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/families", token, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var family model.Family
	decode(t, rec, &family)
	return family
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)
	for _, path := range []string{"/api/health", "/healthz"} {
		rec := do(t, e, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	}
}

func TestBearerGate(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/api/families", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "No authentication token provided")

	rec = do(t, e, http.MethodGet, "/api/families", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestRegisterValidationAndLogin(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "A", "email": "not-an-email", "username": "bad name", "password": "123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var verrs struct {
		Errors []struct{ Field, Message string } `json:"errors"`
	}
	decode(t, rec, &verrs)
	fields := map[string]bool{}
	for _, fe := range verrs.Errors {
		fields[fe.Field] = true
	}
	assert.Equal(t, map[string]bool{"name": true, "email": true, "username": true, "password": true}, fields)

	alice := register(t, e, "Alice", "alice@example.com", "alice")
	assert.Equal(t, "alice@example.com", alice.User.Email)

	rec = do(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Other", "email": "ALICE@example.com", "username": "other", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMAIL_TAKEN")

	rec = do(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{"login": "alice", "password": "secret123"})
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{"login": "alice@example.com", "password": "secret124"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/auth/me", alice.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestFamilyScenario(t *testing.T) {
	e := newTestServer(t)
	alice := register(t, e, "Alice", "alice@example.com", "alice")
	family := createFamily(t, e, alice.Token, "Smiths")
	base := fmt.Sprintf("/api/families/%d", family.ID)

	// Alice adds Bob, who has no account yet.
	rec := do(t, e, http.MethodPost, base+"/members", alice.Token, map[string]string{
		"email": "bob@example.com", "name": "Bob", "role": "member",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var added service.AddMemberResult
	decode(t, rec, &added)
	assert.True(t, added.IsNewUser)
	require.NotEmpty(t, added.TemporaryPassword)
	require.NotNil(t, added.Username)
	assert.Equal(t, "bob", *added.Username)

	rec = do(t, e, http.MethodPost, "/api/auth/login", "", map[string]string{"login": "bob@example.com", "password": added.TemporaryPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var bob authBody
	decode(t, rec, &bob)

	rec = do(t, e, http.MethodGet, base+"/members", bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var members []model.Member
	decode(t, rec, &members)
	require.Len(t, members, 2)
	for _, m := range members {
		if m.ID == bob.User.ID {
			assert.Equal(t, model.RoleMember, m.Role)
		}
	}

	// Bob records an expense in Food.
	rec = do(t, e, http.MethodGet, fmt.Sprintf("/api/categories/%d", family.ID), bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []model.Category
	decode(t, rec, &categories)
	var food uint
	for _, c := range categories {
		if c.Name == "Food" {
			food = c.ID
		}
	}
	require.NotZero(t, food)

	expenses := fmt.Sprintf("/api/expenses/%d", family.ID)
	rec = do(t, e, http.MethodPost, expenses, bob.Token, map[string]interface{}{
		"category_id": food, "amount": 50.00, "date": "2024-03-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var expense struct {
		ID           uint    `json:"id"`
		Amount       float64 `json:"amount"`
		Date         string  `json:"date"`
		CategoryName *string `json:"category_name"`
	}
	decode(t, rec, &expense)
	assert.Equal(t, 50.0, expense.Amount)
	assert.Equal(t, "2024-03-15", expense.Date)

	// Alice is an admin but not the author.
	rec = do(t, e, http.MethodDelete, fmt.Sprintf("%s/%d", expenses, expense.ID), alice.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	for _, token := range []string{alice.Token, bob.Token} {
		rec = do(t, e, http.MethodGet, expenses, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var rows []map[string]interface{}
		decode(t, rec, &rows)
		assert.Len(t, rows, 1)
	}

	// Admin-only operations are refused to Bob whatever the body.
	forbidden := []struct{ method, path string }{
		{http.MethodPost, fmt.Sprintf("/api/categories/%d", family.ID)},
		{http.MethodPut, fmt.Sprintf("/api/categories/%d/%d", family.ID, food)},
		{http.MethodDelete, fmt.Sprintf("/api/categories/%d/%d", family.ID, food)},
		{http.MethodPost, base + "/members"},
		{http.MethodDelete, fmt.Sprintf("%s/members/%d", base, alice.User.ID)},
		{http.MethodDelete, base},
	}
	for _, f := range forbidden {
		rec = do(t, e, f.method, f.path, bob.Token, map[string]string{"name": ""})
		assert.Equal(t, http.StatusForbidden, rec.Code, "%s %s", f.method, f.path)
	}

	// Bob deletes his own expense; a second delete is not found.
	rec = do(t, e, http.MethodDelete, fmt.Sprintf("%s/%d", expenses, expense.ID), bob.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, e, http.MethodDelete, fmt.Sprintf("%s/%d", expenses, expense.ID), bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Alice cannot remove herself.
	rec = do(t, e, http.MethodDelete, fmt.Sprintf("%s/members/%d", base, alice.User.ID), alice.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFamilyGate(t *testing.T) {
	e := newTestServer(t)
	alice := register(t, e, "Alice", "alice@example.com", "alice")
	carol := register(t, e, "Carol", "carol@example.com", "carol")
	family := createFamily(t, e, alice.Token, "Smiths")

	rec := do(t, e, http.MethodGet, fmt.Sprintf("/api/expenses/%d", family.ID), carol.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, e, http.MethodGet, "/api/expenses/abc", alice.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodPost, fmt.Sprintf("/api/expenses/%d", family.ID), alice.Token, map[string]interface{}{
		"amount": -1, "date": "2024-03-15",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"amount"`)
}

func TestAnalyticsEndpoint(t *testing.T) {
	e := newTestServer(t)
	alice := register(t, e, "Alice", "alice@example.com", "alice")
	family := createFamily(t, e, alice.Token, "Smiths")

	for _, amount := range []string{"100.25", "75.25"} {
		rec := do(t, e, http.MethodPost, fmt.Sprintf("/api/expenses/%d", family.ID), alice.Token, map[string]interface{}{
			"amount": json.Number(amount), "date": "2024-03-10",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}
	rec := do(t, e, http.MethodPost, fmt.Sprintf("/api/income/%d", family.ID), alice.Token, map[string]interface{}{
		"source": "Salary", "amount": 1000, "month": "2024-03",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodGet, fmt.Sprintf("/api/analytics/%d", family.ID), alice.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodGet, fmt.Sprintf("/api/analytics/%d?startDate=2024-03-01&endDate=2024-03-31", family.ID), alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report model.AnalyticsReport
	decode(t, rec, &report)
	assert.InDelta(t, 175.50, report.Total, 0.001)
	assert.InDelta(t, 1000, report.TotalIncome, 0.001)
	assert.InDelta(t, 824.50, report.NetBalance, 0.001)
	assert.InDelta(t, 17.55, report.ExpensePercentage, 0.001)
}

func TestMetricsExposed(t *testing.T) {
	e := newTestServer(t)
	do(t, e, http.MethodGet, "/api/health", "", nil)

	rec := do(t, e, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `famledger_http_requests_total{method="GET",route="/api/health",status="200"} 1`))
}

func TestPasswordLongerThanBcryptAccepts(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Alice", "email": "alice@example.com", "username": "alice", "password": strings.Repeat("a", 80),
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"field":"password"`)

	alice := register(t, e, "Alice", "alice@example.com", "alice")
	rec = do(t, e, http.MethodPost, "/api/users/update-password", alice.Token, map[string]string{
		"currentPassword": "secret123", "newPassword": strings.Repeat("é", 40),
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"field":"newPassword"`)

	rec = do(t, e, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Bob", "email": "bob@example.com", "username": "bob", "password": strings.Repeat("b", 72),
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestAmountsMustFitTheColumn(t *testing.T) {
	e := newTestServer(t)
	alice := register(t, e, "Alice", "alice@example.com", "alice")
	family := createFamily(t, e, alice.Token, "Smiths")
	expenses := fmt.Sprintf("/api/expenses/%d", family.ID)

	for _, amount := range []string{"0.004", "99999999999999", "10000000000"} {
		rec := do(t, e, http.MethodPost, expenses, alice.Token, map[string]interface{}{
			"amount": json.Number(amount), "date": "2024-03-15",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, amount)
		assert.Contains(t, rec.Body.String(), "INVALID_AMOUNT", amount)
	}

	rec := do(t, e, http.MethodPost, fmt.Sprintf("/api/income/%d", family.ID), alice.Token, map[string]interface{}{
		"source": "Salary", "amount": json.Number("1000.001"), "month": "2024-03",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, e, http.MethodGet, expenses, alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, e, http.MethodPost, expenses, alice.Token, map[string]interface{}{
		"amount": json.Number("9999999999.99"), "date": "2024-03-15",
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}
