package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

var errTest = errors.New("insert error")

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	return mock
}

func photoApp(svc *Service) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app.Group("/storage"), svc, func(c *fiber.Ctx) error {
		c.Locals("user_id", "user-1")
		return c.Next()
	})
	return app
}

func TestPhotoUploadHandler(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO photo_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", "https://storage.example/summit.jpg", "report_photo", "report-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	app := photoApp(NewService(mock))

	body, _ := json.Marshal(map[string]string{"file_name": "summit.jpg", "kind": "report_photo", "ref_id": "report-1"})
	req := httptest.NewRequest(http.MethodPost, "/storage/photos", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status: %v %v", resp.StatusCode, err)
	}

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["url"] != "https://storage.example/summit.jpg" {
		t.Fatalf("unexpected response %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPhotoUploadDefaults(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO photo_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", "https://storage.example/upload", "report_photo", "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	app := photoApp(NewService(mock))

	req := httptest.NewRequest(http.MethodPost, "/storage/photos", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status: %v %v", resp.StatusCode, err)
	}
}

func TestPhotoUploadInsertError(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO photo_objects`).
		WithArgs(pgxmock.AnyArg(), "user-1", "https://storage.example/x.jpg", "report_photo", "").
		WillReturnError(errTest)

	app := photoApp(NewService(mock))

	req := httptest.NewRequest(http.MethodPost, "/storage/photos", bytes.NewReader([]byte(`{"file_name":"x.jpg"}`)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %v %v", resp.StatusCode, err)
	}
}
