package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"hrportal/internal/portal/portaltest"
)

func setupEnv(t *testing.T) *portaltest.Env {
	t.Helper()
	env := portaltest.Start(t)
	t.Setenv("PORTAL_BASE_URL", env.URL)
	t.Setenv("SESSION_SECRET", portaltest.Secret)
	t.Setenv("PORTAL_SESSION_FILE", filepath.Join(t.TempDir(), "session"))
	t.Setenv("PORTAL_TIMEOUT", "5s")
	return env
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("hrctl %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestCommandsRequireSession(t *testing.T) {
	setupEnv(t)
	if _, err := run(t, "users", "list"); err != errNoSession {
		t.Fatalf("expected errNoSession, got %v", err)
	}
	if _, err := run(t, "session", "start", "--id", "1", "--role", "Boss"); err == nil {
		t.Fatal("expected invalid role to be rejected")
	}
}

func TestHRWorkflow(t *testing.T) {
	setupEnv(t)
	out := mustRun(t, "session", "start", "--id", "1", "--name", "Seed HR", "--role", "HR")
	if !strings.Contains(out, "Session started for Seed HR (HR)") {
		t.Fatalf("unexpected output: %q", out)
	}
	if out := mustRun(t, "session", "show"); !strings.Contains(out, "Seed HR") {
		t.Fatalf("session not cached: %q", out)
	}

	out = mustRun(t, "users", "create", "--role", "Manager", "--name", "Mia", "--email", "mia@example.com",
		"--phone", "5550000000", "--username", "mia", "--password", "secret1", "--hr-id", "1")
	if !strings.Contains(out, "Manager mia created with id 2") {
		t.Fatalf("unexpected output: %q", out)
	}
	if out := mustRun(t, "users", "list", "--role", "Manager"); !strings.Contains(out, "mia") {
		t.Fatalf("manager missing from list: %q", out)
	}

	if _, err := run(t, "users", "edit", "2", "--role", "Manager", "--name", "Mia R"); err == nil {
		t.Fatal("expected edit without password to fail")
	}
	out = mustRun(t, "users", "edit", "2", "--role", "Manager", "--name", "Mia R", "--password", "secret2")
	if !strings.Contains(out, "Manager details updated successfully!") {
		t.Fatalf("unexpected output: %q", out)
	}

	out = mustRun(t, "users", "remove", "2", "--role", "Manager")
	if !strings.Contains(out, "Manager deleted successfully!") {
		t.Fatalf("unexpected output: %q", out)
	}

	mustRun(t, "session", "end")
	if _, err := os.Stat(os.Getenv("PORTAL_SESSION_FILE")); !os.IsNotExist(err) {
		t.Fatalf("session file still present: %v", err)
	}
}

func TestLeaveAndTasksWorkflow(t *testing.T) {
	env := setupEnv(t)
	manager := env.Manager(t, "m1")
	employee := env.Employee(t, "e1", manager.ID)
	id := func(v int64) string { return strconv.FormatInt(v, 10) }

	mustRun(t, "session", "start", "--id", id(employee.ID), "--name", "e1", "--role", "Employee",
		"--hr-id", "1", "--manager-id", id(manager.ID))
	out := mustRun(t, "leave", "apply", "--reason", "rest", "--start", "2024-08-01", "--end", "2024-08-02")
	if !strings.Contains(out, "Leave application submitted successfully!") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := run(t, "leave", "apply", "--reason", "rest", "--start", "2024-08-05", "--end", "2024-08-01"); err == nil ||
		!strings.Contains(err.Error(), "End date must be after start date") {
		t.Fatalf("expected date validation error, got %v", err)
	}
	pdf := filepath.Join(t.TempDir(), "history.pdf")
	mustRun(t, "leave", "export", "-o", pdf)
	if raw, err := os.ReadFile(pdf); err != nil || !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatalf("export not written: %v", err)
	}

	mustRun(t, "session", "start", "--id", id(manager.ID), "--name", "m1", "--role", "Manager", "--hr-id", "1")
	out = mustRun(t, "leave", "pending")
	if !strings.Contains(out, "rest") || !strings.Contains(out, "Pending") {
		t.Fatalf("pending request missing: %q", out)
	}
	if out := mustRun(t, "leave", "approve", "1"); !strings.Contains(out, "Leave request accepted successfully!") {
		t.Fatalf("unexpected output: %q", out)
	}
	if _, err := run(t, "leave", "deny", "1"); err == nil {
		t.Fatal("expected deciding twice to fail")
	}

	out = mustRun(t, "tasks", "assign", "--name", "Quarterly report", "--deadline", "2000-01-01", "--assignee", id(employee.ID))
	if !strings.Contains(out, "Task assigned successfully!") {
		t.Fatalf("unexpected output: %q", out)
	}
	if out := mustRun(t, "tasks", "list", "--assignee", id(employee.ID)); !strings.Contains(out, "overdue") {
		t.Fatalf("expected overdue task: %q", out)
	}
	mustRun(t, "tasks", "complete", "1")
	if out := mustRun(t, "tasks", "list", "--assignee", id(employee.ID)); !strings.Contains(out, "complete") {
		t.Fatalf("expected completed task: %q", out)
	}

	mustRun(t, "feedback", "send", "-m", "Thanks for the quick approval")
	if out := mustRun(t, "feedback", "list"); !strings.Contains(out, "Thanks for the quick approval") {
		t.Fatalf("feedback missing: %q", out)
	}
	if out := mustRun(t, "feedback", "read", "1"); !strings.Contains(out, "Feedback deleted successfully") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestUsersProfile(t *testing.T) {
	env := setupEnv(t)
	manager := env.Manager(t, "m1")
	employee := env.Employee(t, "e1", manager.ID)
	id := strconv.FormatInt(employee.ID, 10)

	mustRun(t, "session", "start", "--id", id, "--name", "e1", "--role", "Employee")
	_, err := run(t, "users", "profile", "--name", "Eve One", "--email", "eve@example.com",
		"--username", "e1", "--phone", "5551234567")
	if err == nil || !strings.Contains(err.Error(), "Password is required to save your profile") {
		t.Fatalf("expected missing password to be rejected, got %v", err)
	}
	out := mustRun(t, "users", "profile", "--name", "Eve One", "--email", "eve@example.com",
		"--username", "e1", "--phone", "5551234567", "--password", "secret9")
	if !strings.Contains(out, "Profile updated successfully") {
		t.Fatalf("unexpected output: %q", out)
	}

	mustRun(t, "session", "start", "--id", "1", "--name", "Seed HR", "--role", "HR")
	if out := mustRun(t, "users", "list", "--manager", strconv.FormatInt(manager.ID, 10)); !strings.Contains(out, "Eve One") {
		t.Fatalf("profile change missing from team list: %q", out)
	}
}

func TestUsersEditMovesEmployee(t *testing.T) {
	env := setupEnv(t)
	m1 := env.Manager(t, "m1")
	m2 := env.Manager(t, "m2")
	employee := env.Employee(t, "e1", m1.ID)
	id := func(v int64) string { return strconv.FormatInt(v, 10) }

	mustRun(t, "session", "start", "--id", "1", "--name", "Seed HR", "--role", "HR")
	out := mustRun(t, "users", "edit", id(employee.ID), "--manager-id", id(m2.ID), "--password", "secret1")
	if !strings.Contains(out, "Employee details updated successfully!") {
		t.Fatalf("unexpected output: %q", out)
	}
	if out := mustRun(t, "users", "list", "--manager", id(m2.ID)); !strings.Contains(out, "e1") {
		t.Fatalf("employee not moved to m2: %q", out)
	}
	if out := mustRun(t, "users", "list", "--manager", id(m1.ID)); strings.Contains(out, "e1@example.com") {
		t.Fatalf("employee still listed under m1: %q", out)
	}
}
