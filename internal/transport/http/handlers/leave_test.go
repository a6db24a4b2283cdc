package handlers_test

import (
	"bytes"
	"io"
	"net/http"
	"testing"
	"time"

	"hrportal/internal/domain/auth"
)

func managerToken(t *testing.T, id int64) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.UserContext{UserID: id, Role: auth.RoleManager}, time.Hour)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return token
}

func TestLeaveLifecycle(t *testing.T) {
	_, ts := newTestServer(t, testConfig("memory", ""))
	client := ts.Client()
	f := createDirectory(t, client, ts.URL, "")

	applyURL := urlf(ts.URL, "/leave/employee/apply?employeeId=%d", f.employee.ID)
	env := doJSON(t, client, http.MethodPost, applyURL, "", map[string]any{
		"reason": "Trip", "startDate": "2024-08-01", "endDate": "2024-07-30",
	}, http.StatusBadRequest)
	if got := env.field("endDate"); got != "End date must be after start date" {
		t.Fatalf("unexpected endDate message %q", got)
	}

	created := decodeData[leaveDTO](t, doJSON(t, client, http.MethodPost, applyURL, "", map[string]any{
		"reason": "Trip", "startDate": "2024-07-30", "endDate": "2024-08-01",
	}, http.StatusCreated))
	if created.Status != "Pending" || created.Days != 3 {
		t.Fatalf("unexpected created request: %+v", created)
	}

	pending := decodeData[[]leaveDTO](t, doJSON(t, client, http.MethodGet, ts.URL+"/leave/apply/manager/getAll", managerToken(t, f.manager.ID), nil, http.StatusOK))
	if len(pending) != 1 || pending[0].ID != created.ID {
		t.Fatalf("expected own team request, got %+v", pending)
	}
	foreign := decodeData[[]leaveDTO](t, doJSON(t, client, http.MethodGet, ts.URL+"/leave/apply/manager/getAll", managerToken(t, f.otherManager.ID), nil, http.StatusOK))
	if len(foreign) != 0 {
		t.Fatalf("another manager must not see this request, got %+v", foreign)
	}
	hrPending := decodeData[[]leaveDTO](t, doJSON(t, client, http.MethodGet, ts.URL+"/leave/apply/hr/getAll", "", nil, http.StatusOK))
	if len(hrPending) != 0 {
		t.Fatalf("hr must not see employee requests, got %+v", hrPending)
	}

	doJSON(t, client, http.MethodPatch, urlf(ts.URL, "/leave/hr/approve/%d", created.ID), "", nil, http.StatusNotFound)
	doJSON(t, client, http.MethodPatch, urlf(ts.URL, "/leave/manager/approve/%d", created.ID), managerToken(t, f.otherManager.ID), nil, http.StatusNotFound)
	approved := decodeData[leaveDTO](t, doJSON(t, client, http.MethodPatch, urlf(ts.URL, "/leave/manager/approve/%d", created.ID), "", nil, http.StatusOK))
	if approved.Status != "Approved" {
		t.Fatalf("expected Approved, got %q", approved.Status)
	}
	env = doJSON(t, client, http.MethodPatch, urlf(ts.URL, "/leave/manager/deny/%d", created.ID), "", nil, http.StatusConflict)
	if env.Error == nil || env.Error.Code != "invalid_state" {
		t.Fatalf("expected invalid_state, got %+v", env.Error)
	}
	doJSON(t, client, http.MethodPatch, ts.URL+"/leave/manager/approve/99999", "", nil, http.StatusNotFound)

	history := decodeData[[]leaveDTO](t, doJSON(t, client, http.MethodGet, urlf(ts.URL, "/leave/employee/history?employeeId=%d", f.employee.ID), "", nil, http.StatusOK))
	if len(history) != 1 || history[0].Status != "Approved" {
		t.Fatalf("unexpected history: %+v", history)
	}

	metrics := decodeData[map[string]float64](t, doJSON(t, client, http.MethodGet, ts.URL+"/metrics", "", nil, http.StatusOK))
	if metrics["leaveFiledTotal"] != 1 || metrics["leaveApprovedTotal"] != 1 || metrics["conflictsTotal"] != 1 {
		t.Fatalf("unexpected metrics: %v", metrics)
	}
}

func TestManagerLeaveGoesToHR(t *testing.T) {
	_, ts := newTestServer(t, testConfig("memory", ""))
	client := ts.Client()
	f := createDirectory(t, client, ts.URL, "")

	doJSON(t, client, http.MethodPost, urlf(ts.URL, "/leave/manager/apply?managerId=%d", f.employee.ID), "", map[string]any{
		"reason": "Conference", "startDate": "2024-03-04", "endDate": "2024-03-04",
	}, http.StatusNotFound)

	created := decodeData[leaveDTO](t, doJSON(t, client, http.MethodPost, urlf(ts.URL, "/leave/manager/apply?managerId=%d", f.manager.ID), "", map[string]any{
		"reason": "Conference", "startDate": "2024-03-04", "endDate": "2024-03-06",
	}, http.StatusCreated))

	pending := decodeData[[]leaveDTO](t, doJSON(t, client, http.MethodGet, ts.URL+"/leave/apply/hr/getAll", "", nil, http.StatusOK))
	if len(pending) != 1 || pending[0].ID != created.ID {
		t.Fatalf("unexpected hr queue: %+v", pending)
	}
	denied := decodeData[leaveDTO](t, doJSON(t, client, http.MethodPatch, urlf(ts.URL, "/leave/hr/deny/%d", created.ID), "", nil, http.StatusOK))
	if denied.Status != "Denied" {
		t.Fatalf("expected Denied, got %q", denied.Status)
	}
	doJSON(t, client, http.MethodPatch, urlf(ts.URL, "/leave/hr/approve/%d", created.ID), "", nil, http.StatusConflict)
}

func TestLeaveHistoryExport(t *testing.T) {
	_, ts := newTestServer(t, testConfig("memory", ""))
	client := ts.Client()
	f := createDirectory(t, client, ts.URL, "")
	doJSON(t, client, http.MethodPost, urlf(ts.URL, "/leave/employee/apply?employeeId=%d", f.employee.ID), "", map[string]any{
		"reason": "Family", "startDate": "2024-05-01", "endDate": "2024-05-02",
	}, http.StatusCreated)

	resp, err := client.Get(urlf(ts.URL, "/leave/employee/history/export?employeeId=%d", f.employee.ID))
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}

	doJSON(t, client, http.MethodGet, ts.URL+"/leave/employee/history/export?employeeId=abc", "", nil, http.StatusBadRequest)
}
