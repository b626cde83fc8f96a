package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func TestValidateAccessToken(t *testing.T) {
	svc := NewService("secret")

	token := signTestToken(t, "secret", "user-1", time.Minute)
	userID, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("unexpected user id %q", userID)
	}
}

func TestValidateAccessTokenExpired(t *testing.T) {
	svc := NewService("secret")

	token := signTestToken(t, "secret", "user-1", -time.Minute)
	if _, err := svc.ValidateAccessToken(token); err == nil {
		t.Fatalf("expected expired token error")
	}
}

func TestValidateAccessTokenGarbage(t *testing.T) {
	svc := NewService("secret")
	if _, err := svc.ValidateAccessToken("garbage"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestVerifyEndpoint(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("secret"))

	req := httptest.NewRequest(http.MethodGet, "/auth/jwt/verify", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized without token")
	}

	token := signTestToken(t, "secret", "user-1", time.Minute)
	req = httptest.NewRequest(http.MethodGet, "/auth/jwt/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok")
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/jwt/verify", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for bad token")
	}
}
