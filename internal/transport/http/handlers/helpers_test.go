package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"hrportal/internal/app/server"
	"hrportal/internal/platform/config"
)

const testSecret = "test-secret"

type apiError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

func (e envelope) field(name string) string {
	if e.Error == nil {
		return ""
	}
	fields, _ := e.Error.Details["fields"].(map[string]any)
	msg, _ := fields[name].(string)
	return msg
}

func testConfig(driver, dbURL string) config.Config {
	return config.Config{
		Addr:           ":0",
		DatabaseURL:    dbURL,
		StoreDriver:    driver,
		SessionSecret:  testSecret,
		Environment:    "test",
		SeedHRName:     "Seed HR",
		SeedHRUsername: "seed-hr",
		SeedHRPassword: "ChangeMe123!",
		RunMigrations:  true,
		RunSeed:        true,
		MaxBodyBytes:   1048576,
		MetricsEnabled: true,
	}
}

func newTestServer(t *testing.T, cfg config.Config) (*server.App, *httptest.Server) {
	t.Helper()
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	ts := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		ts.Close()
		app.Close()
	})
	return app, ts
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, body any, want int) envelope {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if resp.StatusCode != want {
		t.Fatalf("%s %s: expected status %d, got %d: %s", method, url, want, resp.StatusCode, string(raw))
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("failed to decode data: %v (%s)", err, string(env.Data))
	}
	return out
}

type userDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	ManagerID *int64 `json:"managerId"`
}

type leaveDTO struct {
	ID          int64   `json:"id"`
	RequesterID int64   `json:"requesterId"`
	Status      string  `json:"status"`
	Days        float64 `json:"days"`
}

// directoryFixture creates one HR user, two managers and one employee
// reporting to the first manager.
type directoryFixture struct {
	hr, manager, otherManager, employee userDTO
}

func createDirectory(t *testing.T, client *http.Client, baseURL, suffix string) directoryFixture {
	t.Helper()
	var f directoryFixture
	f.hr = decodeData[userDTO](t, doJSON(t, client, http.MethodPost, baseURL+"/user/add", "", map[string]any{
		"name": "Hana", "email": "hana@example.com", "phone": "5550000001",
		"username": "hana" + suffix, "password": "secret1", "role": "HR",
	}, http.StatusCreated))
	f.manager = decodeData[userDTO](t, doJSON(t, client, http.MethodPost, baseURL+"/manager/add", "", map[string]any{
		"name": "Mads", "email": "mads@example.com", "phone": "5550000002",
		"username": "mads" + suffix, "password": "secret1", "hrId": f.hr.ID,
	}, http.StatusCreated))
	f.otherManager = decodeData[userDTO](t, doJSON(t, client, http.MethodPost, baseURL+"/manager/add", "", map[string]any{
		"name": "Olga", "email": "olga@example.com", "phone": "5550000003",
		"username": "olga" + suffix, "password": "secret1", "hrId": f.hr.ID,
	}, http.StatusCreated))
	f.employee = decodeData[userDTO](t, doJSON(t, client, http.MethodPost, baseURL+"/user/add", "", map[string]any{
		"name": "Emil", "email": "emil@example.com", "phone": "5550000004",
		"username": "emil" + suffix, "password": "secret1", "role": "Employee",
		"hrId": f.hr.ID, "managerId": f.manager.ID,
	}, http.StatusCreated))
	return f
}

func urlf(base, format string, args ...any) string {
	return base + fmt.Sprintf(format, args...)
}
