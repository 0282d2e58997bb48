package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/terraincognita07/cradle/internal/db"
	"github.com/terraincognita07/cradle/internal/i18n"
	"github.com/terraincognita07/cradle/internal/models"
	"github.com/terraincognita07/cradle/internal/services"
	"github.com/terraincognita07/cradle/internal/session"
)

const testPassword = "StrongPass1"

var csrfMetaTokenPattern = regexp.MustCompile(`<meta name="csrf-token" content="([^"]+)"`)

type testApp struct {
	app   *fiber.App
	repos *db.Repositories
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithCSRF(t, false)
}

func newTestAppWithCSRF(t *testing.T, withCSRF bool) *testApp {
	t.Helper()

	_, testFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve current test file path")
	}

	apiDir := filepath.Dir(testFile)
	internalDir := filepath.Dir(apiDir)
	templatesDir := filepath.Join(internalDir, "templates")
	localesDir := filepath.Join(internalDir, "i18n", "locales")
	databasePath := filepath.Join(t.TempDir(), "cradle-api-test.db")

	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager("en", localesDir)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	repos := db.NewRepositories(database)
	handler, err := NewHandler(Config{
		Repositories: repos,
		Sessions:     session.NewCookieStore([]byte("test-secret-key-with-enough-length!!")),
		I18n:         i18nManager,
		TemplatesDir: templatesDir,
		Location:     time.UTC,
		Logger:       quietTestLogger(),
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	if withCSRF {
		app.Use(csrf.New(CSRFMiddlewareConfig(false)))
	}
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return &testApp{app: app, repos: repos}
}

func createTestUser(t *testing.T, repos *db.Repositories, email string, firstName string) models.User {
	t.Helper()

	passwordHash, err := services.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     "Tester",
		CreatedAt:    time.Now().UTC(),
	}
	if err := repos.Users.Create(&user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func loginAndExtractAuthCookie(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	form := url.Values{
		"email":    {email},
		"password": {testPassword},
	}
	response := doForm(t, app, http.MethodPost, "/login", form, "")
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected login status 303, got %d", response.StatusCode)
	}
	cookie := responseCookie(response.Cookies(), authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("auth cookie is missing in login response")
	}
	return cookie.Name + "=" + cookie.Value
}

func createTestBaby(t *testing.T, app *fiber.App, authCookie string, firstName string) uint {
	t.Helper()

	payload := map[string]string{
		"firstName":   firstName,
		"lastName":    "Tester",
		"dateOfBirth": "2025-01-15",
		"gender":      "female",
	}
	response := doJSON(t, app, http.MethodPost, "/baby/new", payload, authCookie)
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected baby create status 201, got %d: %s", response.StatusCode, readBody(t, response))
	}
	var body struct {
		Baby models.Baby `json:"baby"`
	}
	decodeJSON(t, response, &body)
	if body.Baby.ID == 0 {
		t.Fatal("expected created baby id")
	}
	return body.Baby.ID
}

func doRequest(t *testing.T, app *fiber.App, request *http.Request, cookie string) *http.Response {
	t.Helper()

	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	return response
}

func doGet(t *testing.T, app *fiber.App, path string, cookie string) *http.Response {
	t.Helper()
	return doRequest(t, app, httptest.NewRequest(http.MethodGet, path, nil), cookie)
}

func doGetJSON(t *testing.T, app *fiber.App, path string, cookie string) *http.Response {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, path, nil)
	request.Header.Set("Accept", "application/json")
	return doRequest(t, app, request, cookie)
}

func doForm(t *testing.T, app *fiber.App, method string, path string, form url.Values, cookie string) *http.Response {
	t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return doRequest(t, app, request, cookie)
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, payload any, cookie string) *http.Response {
	t.Helper()
	return doRequest(t, app, newJSONRequest(t, method, path, payload), cookie)
}

func newJSONRequest(t *testing.T, method string, path string, payload any) *http.Request {
	t.Helper()

	encoded, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encode payload: %v", err)
	}
	request := httptest.NewRequest(method, path, strings.NewReader(string(encoded)))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	return request
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode json body: %v", err)
	}
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func joinCookieHeader(values ...string) string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return strings.Join(result, "; ")
}

func cookiePair(cookie *http.Cookie) string {
	if cookie == nil {
		return ""
	}
	return cookie.Name + "=" + cookie.Value
}

func babyURL(babyID uint, suffix string) string {
	return babyPath(babyID) + suffix
}

func quietTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
