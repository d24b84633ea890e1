package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/glycare/config"
	"github.com/Alijeyrad/glycare/internal/api/http/router"
	"github.com/Alijeyrad/glycare/internal/service/clinical"
	"github.com/Alijeyrad/glycare/internal/service/patient"
	"github.com/Alijeyrad/glycare/internal/store"
	"github.com/Alijeyrad/glycare/pkg/authorize"
	"github.com/Alijeyrad/glycare/pkg/logs"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := logs.Discard()
	auth, err := authorize.NewDefault(context.Background(), logger)
	if err != nil {
		t.Fatal(err)
	}
	tables := store.NewMemoryTables()
	r := router.NewRouter(router.Params{
		Cfg:        &config.Config{},
		Auth:       auth,
		PatientSvc: patient.New(tables.Patients, logger),
		Records:    clinical.NewServices(tables, nil, logger),
	})
	return New(&config.Config{}, r, nil, false)
}

type actor struct{ role, id string }

var (
	drAlice = actor{"doctor", "d-alice"}
	drBob   = actor{"doctor", "d-bob"}
)

// call sends a JSON request and decodes the envelope's data into out.
func call(t *testing.T, app *fiber.App, who actor, method, path, body string, out any) int {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if who.role != "" {
		req.Header.Set("X-Actor-Role", who.role)
		req.Header.Set("X-Actor-Id", who.id)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("%s %s: decode data: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

type idOnly struct {
	ID      string  `json:"id"`
	ScopeID string  `json:"scope_id"`
	Value   float64 `json:"value"`
}

func createPatient(t *testing.T, app *fiber.App, doctor actor, name string) string {
	t.Helper()
	var p idOnly
	if code := call(t, app, doctor, http.MethodPost, "/api/v1/patients", `{"display_name":"`+name+`"}`, &p); code != http.StatusCreated {
		t.Fatalf("create patient: status %d", code)
	}
	return p.ID
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	if code := call(t, app, actor{}, http.MethodGet, "/livez", "", nil); code != http.StatusOK {
		t.Errorf("/livez status = %d", code)
	}
}

func TestSessionHeadersRequired(t *testing.T) {
	app := newTestApp(t)
	tests := []struct {
		name string
		who  actor
	}{
		{"none", actor{}},
		{"unknown role", actor{"nurse", "n-1"}},
		{"missing id", actor{"doctor", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := call(t, app, tt.who, http.MethodGet, "/api/v1/patients", "", nil); code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", code)
			}
		})
	}
}

func TestPatientDirectory(t *testing.T) {
	app := newTestApp(t)
	ada := createPatient(t, app, drAlice, "Ada")
	createPatient(t, app, drBob, "Bob")

	var mine []idOnly
	if code := call(t, app, drAlice, http.MethodGet, "/api/v1/patients", "", &mine); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(mine) != 1 || mine[0].ID != ada {
		t.Errorf("alice's patients = %+v", mine)
	}

	if code := call(t, app, drBob, http.MethodGet, "/api/v1/patients/"+ada, "", nil); code != http.StatusForbidden {
		t.Errorf("bob reading ada: status = %d, want 403", code)
	}
	if code := call(t, app, actor{"patient", ada}, http.MethodGet, "/api/v1/patients/"+ada, "", nil); code != http.StatusOK {
		t.Errorf("ada reading herself: status = %d, want 200", code)
	}
	if code := call(t, app, actor{"patient", ada}, http.MethodGet, "/api/v1/patients", "", nil); code != http.StatusForbidden {
		t.Errorf("patient listing directory: status = %d, want 403", code)
	}
	if code := call(t, app, drAlice, http.MethodPost, "/api/v1/patients", `{"display_name":"  "}`, nil); code != http.StatusBadRequest {
		t.Errorf("blank name: status = %d, want 400", code)
	}
}

func TestBloodSugarLifecycle(t *testing.T) {
	app := newTestApp(t)
	ada := createPatient(t, app, drAlice, "Ada")
	base := "/api/v1/patients/" + ada + "/blood-sugar"

	var m idOnly
	code := call(t, app, drAlice, http.MethodPost, base, `{"value":200,"measured_at":"2024-03-01T08:00"}`, &m)
	if code != http.StatusCreated || m.ID == "" || m.ScopeID != ada {
		t.Fatalf("create: status %d, body %+v", code, m)
	}

	var list []idOnly
	if code := call(t, app, actor{"patient", ada}, http.MethodGet, base, "", &list); code != http.StatusOK || len(list) != 1 {
		t.Fatalf("patient list: status %d, %+v", code, list)
	}

	if code := call(t, app, drBob, http.MethodGet, base, "", nil); code != http.StatusForbidden {
		t.Errorf("other doctor list: status = %d, want 403", code)
	}
	if code := call(t, app, drBob, http.MethodPut, "/api/v1/blood-sugar/"+m.ID, `{"value":90,"measured_at":"2024-03-01T08:00"}`, nil); code != http.StatusForbidden {
		t.Errorf("other doctor edit: status = %d, want 403", code)
	}

	var edited idOnly
	if code := call(t, app, drAlice, http.MethodPut, "/api/v1/blood-sugar/"+m.ID, `{"value":90,"measured_at":"2024-03-01T08:00"}`, &edited); code != http.StatusOK || edited.Value != 90 {
		t.Fatalf("edit: status %d, %+v", code, edited)
	}

	if code := call(t, app, drAlice, http.MethodPost, base, `{"value":-1,"measured_at":"2024-03-01T08:00"}`, nil); code != http.StatusBadRequest {
		t.Errorf("invalid value: status = %d, want 400", code)
	}
	if code := call(t, app, drAlice, http.MethodPost, base, `{not json`, nil); code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", code)
	}

	if code := call(t, app, drAlice, http.MethodDelete, "/api/v1/blood-sugar/"+m.ID, "", nil); code != http.StatusNoContent {
		t.Errorf("delete: status = %d, want 204", code)
	}
	if code := call(t, app, drAlice, http.MethodDelete, "/api/v1/blood-sugar/"+m.ID, "", nil); code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", code)
	}
}

func TestPatientCannotEditPlans(t *testing.T) {
	app := newTestApp(t)
	ada := createPatient(t, app, drAlice, "Ada")
	me := actor{"patient", ada}
	base := "/api/v1/patients/" + ada + "/exercise-plans"

	if code := call(t, app, me, http.MethodPost, base, `{"name":"Walk","start_date":"2024-03-01"}`, nil); code != http.StatusForbidden {
		t.Errorf("patient create plan: status = %d, want 403", code)
	}
	if code := call(t, app, drAlice, http.MethodPost, base, `{"name":"Walk","status":"active","start_date":"2024-03-01"}`, nil); code != http.StatusCreated {
		t.Fatalf("doctor create plan: status = %d", code)
	}
	var plans []idOnly
	if code := call(t, app, me, http.MethodGet, base, "", &plans); code != http.StatusOK || len(plans) != 1 {
		t.Errorf("patient list plans: status %d, %+v", code, plans)
	}
	if code := call(t, app, me, http.MethodGet, "/api/v1/patients/someone-else/exercise-plans", "", nil); code != http.StatusForbidden {
		t.Errorf("patient reading foreign scope: status = %d, want 403", code)
	}
}
