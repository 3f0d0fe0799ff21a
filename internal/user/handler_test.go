package user

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type fakeGate struct {
	exists map[int]bool
}

func (f *fakeGate) Exists(userID int) bool {
	return f.exists[userID]
}

func makeAppWithUserHandler(h *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id, "admin": c.Get("X-Admin") == "true"}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	h.RegisterPublicRoutes(app)
	h.RegisterProtectedRoutes(app)
	h.RegisterAdminRoutes(app)
	return app
}

func TestRegisterAndLogin(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	handler := NewHandler(NewService(repo), &fakeGate{exists: map[int]bool{}})
	app := makeAppWithUserHandler(handler)

	body := `{"username":"ana","email":"Ana@Example.com","password":"secret"}`
	req := httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	// duplicate email (case-insensitive)
	req = httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(`{"username":"ana2","email":"ana@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", res.StatusCode)
	}

	// duplicate username
	req = httptest.NewRequest("POST", "/api/v1/sign-up", strings.NewReader(`{"username":"ana","email":"other@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate username, got %d", res.StatusCode)
	}

	// wrong password
	req = httptest.NewRequest("POST", "/api/v1/sign-in", strings.NewReader(`{"email":"ana@example.com","password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}

	// success carries the profile gate flag
	req = httptest.NewRequest("POST", "/api/v1/sign-in", strings.NewReader(`{"email":"ana@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	var login struct {
		Token      string `json:"token"`
		HasProfile bool   `json:"hasProfile"`
	}
	if err := json.Unmarshal(b, &login); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if login.Token == "" {
		t.Fatalf("expected a token")
	}
	if login.HasProfile {
		t.Fatalf("expected hasProfile false before profile creation")
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	svc := NewService(repo)
	if _, err := svc.Register(User{Username: "ana", Email: "ana@example.com", Password: "secret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	stored, _ := repo.GetByEmail("ana@example.com")
	stored.Active = false
	repo.users[0] = stored

	handler := NewHandler(svc, &fakeGate{exists: map[int]bool{}})
	app := makeAppWithUserHandler(handler)

	req := httptest.NewRequest("POST", "/api/v1/sign-in", strings.NewReader(`{"email":"ana@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for deactivated account, got %d", res.StatusCode)
	}
}

func TestAdminRoutes(t *testing.T) {
	repo := NewInMemoryRepository([]User{
		{ID: 1, Username: "ana", Email: "ana@example.com", Active: true},
		{ID: 2, Username: "ben", Email: "ben@example.com", Active: true},
	})
	handler := NewHandler(NewService(repo), &fakeGate{exists: map[int]bool{}})
	app := makeAppWithUserHandler(handler)

	// non-admin is refused
	req := httptest.NewRequest("GET", "/api/v1/admin/users", nil)
	req.Header.Set("X-User-ID", "1")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", res.StatusCode)
	}

	// admin lists everyone
	req = httptest.NewRequest("GET", "/api/v1/admin/users", nil)
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-Admin", "true")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	var users []User
	if err := json.Unmarshal(b, &users); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}

	// admin edits account-level fields
	req = httptest.NewRequest("PATCH", "/api/v1/admin/user/2", strings.NewReader(`{"username":"benji","active":false}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-Admin", "true")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for admin edit, got %d", res.StatusCode)
	}
	stored, _ := repo.GetByID(2)
	if stored.Username != "benji" || stored.Active {
		t.Fatalf("account edit not applied: %+v", stored)
	}

	// deactivate endpoint
	req = httptest.NewRequest("POST", "/api/v1/admin/user/1/deactivate", nil)
	req.Header.Set("X-User-ID", "1")
	req.Header.Set("X-Admin", "true")
	res, _ = app.Test(req)
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for deactivate, got %d", res.StatusCode)
	}
	stored, _ = repo.GetByID(1)
	if stored.Active {
		t.Fatalf("account still active after deactivation")
	}
}
