package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/proffinder/backend/models"
	"github.com/proffinder/backend/utils"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type stubUserFinder struct {
	users map[uuid.UUID]*models.User
}

func (s *stubUserFinder) FindUserByID(id uuid.UUID) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestApp(finder UserFinder, roles ...string) *fiber.App {
	app := fiber.New()
	chain := []fiber.Handler{Protected(testSecret), AttachPrincipal(finder)}
	if len(roles) > 0 {
		chain = append(chain, RoleRequired(roles...))
	}
	handlers := append(chain, func(c *fiber.Ctx) error {
		principal, _ := PrincipalFrom(c)
		return c.JSON(fiber.Map{"role": principal.Role})
	})
	app.Get("/guarded", handlers...)
	return app
}

func TestProtectedRejectsMissingToken(t *testing.T) {
	app := newTestApp(&stubUserFinder{})

	req := httptest.NewRequest("GET", "/guarded", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestProtectedRejectsMalformedToken(t *testing.T) {
	app := newTestApp(&stubUserFinder{})

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestProtectedRejectsExpiredToken(t *testing.T) {
	ts := utils.NewTokenService(testSecret)
	ts.TTL = -time.Minute
	token, err := ts.Generate(uuid.New(), models.RoleStudent)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	app := newTestApp(&stubUserFinder{})
	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAttachPrincipalRejectsDeletedUser(t *testing.T) {
	ts := utils.NewTokenService(testSecret)
	token, err := ts.Generate(uuid.New(), models.RoleStudent)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Finder knows no users, as if the account was deleted after issuance.
	app := newTestApp(&stubUserFinder{users: map[uuid.UUID]*models.User{}})
	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRoleRequired(t *testing.T) {
	ts := utils.NewTokenService(testSecret)

	teacherID := uuid.New()
	finder := &stubUserFinder{users: map[uuid.UUID]*models.User{
		teacherID: {ID: teacherID, Name: "T", Email: "t@x.com", Role: models.RoleTeacher},
	}}

	token, err := ts.Generate(teacherID, models.RoleTeacher)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	tests := []struct {
		name       string
		allowed    []string
		wantStatus int
	}{
		{name: "role allowed", allowed: []string{models.RoleTeacher}, wantStatus: fiber.StatusOK},
		{name: "role in allow-list", allowed: []string{models.RoleStudent, models.RoleTeacher}, wantStatus: fiber.StatusOK},
		{name: "role denied", allowed: []string{models.RoleStudent}, wantStatus: fiber.StatusForbidden},
		{name: "admin only", allowed: []string{models.RoleAdmin}, wantStatus: fiber.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(finder, tt.allowed...)
			req := httptest.NewRequest("GET", "/guarded", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestRoleGateUsesCurrentRoleNotClaims(t *testing.T) {
	ts := utils.NewTokenService(testSecret)

	userID := uuid.New()
	// Token still says teacher, but the stored record was demoted.
	finder := &stubUserFinder{users: map[uuid.UUID]*models.User{
		userID: {ID: userID, Role: models.RoleStudent},
	}}

	token, err := ts.Generate(userID, models.RoleTeacher)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	app := newTestApp(finder, models.RoleTeacher)
	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("status = %d, want 403: role gate trusted stale claims", resp.StatusCode)
	}
}
