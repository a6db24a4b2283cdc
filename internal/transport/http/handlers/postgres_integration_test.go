package handlers_test

import (
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

func TestPostgresLeaveJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	_, ts := newTestServer(t, testConfig("postgres", dbURL))
	client := ts.Client()
	suffix := fmt.Sprintf("-%d", time.Now().UnixNano())
	f := createDirectory(t, client, ts.URL, suffix)

	created := decodeData[leaveDTO](t, doJSON(t, client, http.MethodPost, urlf(ts.URL, "/leave/employee/apply?employeeId=%d", f.employee.ID), "", map[string]any{
		"reason": "Trip", "startDate": "2024-07-30", "endDate": "2024-08-01",
	}, http.StatusCreated))
	if created.Days != 3 {
		t.Fatalf("expected 3 days, got %v", created.Days)
	}

	pending := decodeData[[]leaveDTO](t, doJSON(t, client, http.MethodGet, ts.URL+"/leave/apply/manager/getAll", managerToken(t, f.manager.ID), nil, http.StatusOK))
	if len(pending) != 1 || pending[0].ID != created.ID {
		t.Fatalf("unexpected pending list: %+v", pending)
	}

	doJSON(t, client, http.MethodPatch, urlf(ts.URL, "/leave/manager/approve/%d", created.ID), "", nil, http.StatusOK)
	doJSON(t, client, http.MethodPatch, urlf(ts.URL, "/leave/manager/deny/%d", created.ID), "", nil, http.StatusConflict)

	for _, u := range []userDTO{f.employee} {
		doJSON(t, client, http.MethodDelete, urlf(ts.URL, "/user/delete/%d", u.ID), "", nil, http.StatusOK)
	}
	for _, u := range []userDTO{f.manager, f.otherManager} {
		doJSON(t, client, http.MethodDelete, urlf(ts.URL, "/manager/delete/%d", u.ID), "", nil, http.StatusOK)
	}
	doJSON(t, client, http.MethodDelete, urlf(ts.URL, "/user/delete/%d", f.hr.ID), "", nil, http.StatusOK)
}
