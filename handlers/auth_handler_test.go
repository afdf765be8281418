package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/proffinder/backend/models"
	"github.com/proffinder/backend/utils"
)

func newRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newAuthApp() *fiber.App {
	h := NewAuthHandler(nil, utils.NewTokenService("test-secret"))
	app := fiber.New()
	app.Post("/register", h.Register)
	app.Post("/login", h.Login)
	app.Delete("/delete/:id", h.DeleteUser)
	return app
}

func TestRegisterValidation(t *testing.T) {
	app := newAuthApp()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"email":"a@x.com","password":"secret1","role":"student"}`},
		{name: "bad email", body: `{"name":"A","email":"not-an-email","password":"secret1","role":"student"}`},
		{name: "short password", body: `{"name":"A","email":"a@x.com","password":"abc","role":"student"}`},
		{name: "missing role", body: `{"name":"A","email":"a@x.com","password":"secret1"}`},
		{name: "admin role refused", body: `{"name":"A","email":"a@x.com","password":"secret1","role":"admin"}`},
		{name: "unknown role", body: `{"name":"A","email":"a@x.com","password":"secret1","role":"wizard"}`},
		{name: "not json", body: `name=A`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status := postJSON(t, app, "/register", tt.body); status != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
		})
	}
}

func TestLoginValidation(t *testing.T) {
	app := newAuthApp()

	tests := []struct {
		name string
		body string
	}{
		{name: "missing email", body: `{"password":"secret1"}`},
		{name: "missing password", body: `{"email":"a@x.com"}`},
		{name: "bad email", body: `{"email":"nope","password":"secret1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status := postJSON(t, app, "/login", tt.body); status != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
		})
	}
}

func TestDeleteUserRejectsMalformedID(t *testing.T) {
	app := newAuthApp()

	req := newRequest(t, "DELETE", "/delete/not-a-uuid", "")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRegistrationRoleSetIsClosed(t *testing.T) {
	// The register handler's oneof list must stay aligned with the role
	// constants it is meant to admit.
	for _, role := range []string{models.RoleStudent, models.RoleTeacher} {
		req := RegisterRequest{Name: "A", Email: "a@x.com", Password: "secret1", Role: role}
		if err := validate.Struct(req); err != nil {
			t.Errorf("role %s rejected by validation: %v", role, err)
		}
	}
	req := RegisterRequest{Name: "A", Email: "a@x.com", Password: "secret1", Role: models.RoleAdmin}
	if err := validate.Struct(req); err == nil {
		t.Error("admin role accepted by registration validation")
	}
}
