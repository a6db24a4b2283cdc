// Package portaltest starts the system of record on the memory store so
// portal controllers can be exercised over real HTTP.
package portaltest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"hrportal/internal/app/server"
	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/directory"
	"hrportal/internal/platform/config"
	"hrportal/internal/portal/identity"
	"hrportal/internal/portal/remote"
)

const Secret = "portal-test-secret"

// SeedHRID is the id the bootstrap HR account receives on a fresh store.
const SeedHRID int64 = 1

type Env struct {
	URL    string
	server *httptest.Server
}

func Start(t testing.TB) *Env {
	t.Helper()
	app, err := server.New(context.Background(), config.Config{
		StoreDriver:    config.StoreDriverMemory,
		SessionSecret:  Secret,
		Environment:    "test",
		SeedHRName:     "Seed HR",
		SeedHRUsername: "seed-hr",
		SeedHRPassword: "ChangeMe123!",
		RunSeed:        true,
		MaxBodyBytes:   1 << 20,
	})
	if err != nil {
		t.Fatalf("start app: %v", err)
	}
	ts := httptest.NewServer(app.Router)
	t.Cleanup(func() {
		ts.Close()
		app.Close()
	})
	return &Env{URL: ts.URL, server: ts}
}

// Client returns an anonymous client, or one carrying who's bearer token.
func (e *Env) Client(t testing.TB, who *identity.Identity) *remote.Client {
	t.Helper()
	opts := []remote.Option{remote.WithHTTPClient(e.server.Client())}
	if who != nil {
		token, err := auth.GenerateToken(Secret, who.UserContext(), time.Hour)
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		opts = append(opts, remote.WithToken(func() string { return token }))
	}
	return remote.New(e.URL, opts...)
}

// CreateUser adds u through the public endpoints and fails the test on error.
func (e *Env) CreateUser(t testing.TB, u directory.NewUser) directory.User {
	t.Helper()
	path := "/user/add"
	if auth.NormalizeRole(u.Role) == auth.RoleManager {
		path = "/manager/add"
	}
	var created directory.User
	if err := e.Client(t, nil).Post(context.Background(), path, nil, u, &created); err != nil {
		t.Fatalf("create %s: %v", u.Username, err)
	}
	return created
}

func (e *Env) Manager(t testing.TB, username string) directory.User {
	t.Helper()
	hr := SeedHRID
	return e.CreateUser(t, directory.NewUser{
		Name: username, Email: username + "@example.com", Phone: "5550000000",
		Username: username, Password: "secret1", Role: auth.RoleManager, HRID: &hr,
	})
}

func (e *Env) Employee(t testing.TB, username string, managerID int64) directory.User {
	t.Helper()
	hr := SeedHRID
	return e.CreateUser(t, directory.NewUser{
		Name: username, Email: username + "@example.com", Phone: "5550000000",
		Username: username, Password: "secret1", Role: auth.RoleEmployee, HRID: &hr, ManagerID: &managerID,
	})
}
