package ownerships

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	ownsvc "ledger-admin/internal/application/ownership"
	"ledger-admin/internal/domain"
	"ledger-admin/internal/infrastructure/database"
	"ledger-admin/internal/middleware"
	"ledger-admin/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type envelope struct {
	Status string                 `json:"status"`
	Data   map[string]interface{} `json:"data"`
	Error  struct {
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
	} `json:"error"`
}

func setupOwnershipsTest(t *testing.T) (*fiber.App, *gorm.DB, testutil.AccountOwnerships, domain.Contact) {
	db := testutil.NewDB(t)
	fx := testutil.NewAccountOwnerships(t, db, now)
	contact := testutil.Contact(t, db, "temporary")
	svc := &ownsvc.Service{
		Store:    &database.OwnershipStore{DB: db},
		Accounts: &database.AccountLookup{DB: db},
		Contacts: &database.ContactLookup{DB: db},
		Clock:    domain.FixedClock{T: now},
	}
	h := &Handlers{Service: svc}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Post("/fobo-account-ownerships/add-temporary-owner", h.AddTemporaryOwner)
	app.Post("/fobo-account-ownerships", h.Create)
	app.Patch("/fobo-account-ownerships/:id/update-temporary-owner", h.Update)
	app.Get("/fobo-account-ownerships/:id", h.Get)
	app.Get("/fobo-accounts/:id/ownerships", h.ListByAccount)
	return app, db, fx, contact
}

func send(t *testing.T, app *fiber.App, method, target string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestAddTemporaryOwner_CommentVariants(t *testing.T) {
	app, db, fx, contact := setupOwnershipsTest(t)

	comments := []interface{}{nil, "", "covering holidays"}
	for i, comment := range comments {
		start := now.AddDate(0, 0, 10*i)
		code, body := send(t, app, "POST", "/fobo-account-ownerships/add-temporary-owner", map[string]interface{}{
			"fobo_account_ownership": fx.Backup.ID.String(),
			"contact":                contact.ID,
			"start_date":             start.Format("2006-01-02T15:04"),
			"end_date":               start.AddDate(0, 0, 5).Format("2006-01-02") + "T07:15:22",
			"ownership_comment":      comment,
		})
		require.Equal(t, 201, code, body.Error.Message)
		assert.Equal(t, "BACKUP", body.Data["role"])
		assert.Equal(t, float64(fx.Account.ID), body.Data["fobo_account"])
		assert.Equal(t, comment, body.Data["ownership_comment"])

		var stored domain.Ownership
		require.NoError(t, db.First(&stored, "id = ?", body.Data["id"]).Error)
		if comment == nil {
			assert.Nil(t, stored.Comment)
		} else {
			require.NotNil(t, stored.Comment)
			assert.Equal(t, comment, *stored.Comment)
		}
	}
}

func TestAddTemporaryOwner_BadInput(t *testing.T) {
	app, _, fx, contact := setupOwnershipsTest(t)

	tests := []struct {
		name string
		body map[string]interface{}
		code int
	}{
		{"bad reference", map[string]interface{}{"fobo_account_ownership": "nope", "contact": contact.ID, "start_date": "2024-06-01"}, 400},
		{"unknown reference", map[string]interface{}{"fobo_account_ownership": "0b6f1d7a-4c1e-4a55-9f7d-2d3b8c1e0a11", "contact": contact.ID, "start_date": "2024-06-01"}, 404},
		{"missing start", map[string]interface{}{"fobo_account_ownership": fx.Backup.ID.String(), "contact": contact.ID}, 400},
		{"bad date", map[string]interface{}{"fobo_account_ownership": fx.Backup.ID.String(), "contact": contact.ID, "start_date": "01/06/2024"}, 400},
		{"unknown contact", map[string]interface{}{"fobo_account_ownership": fx.Backup.ID.String(), "contact": 999, "start_date": "2024-06-01"}, 404},
		{"end before start", map[string]interface{}{"fobo_account_ownership": fx.Backup.ID.String(), "contact": contact.ID, "start_date": "2024-06-10", "end_date": "2024-06-01"}, 400},
		{"primary overlap", map[string]interface{}{"fobo_account_ownership": fx.Primary.ID.String(), "contact": contact.ID, "start_date": "2024-05-15"}, 409},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := send(t, app, "POST", "/fobo-account-ownerships/add-temporary-owner", tt.body)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tt.code, body.Error.StatusCode)
		})
	}
}

func TestCreate_UnparsableBody(t *testing.T) {
	app, db, _, _ := setupOwnershipsTest(t)

	for name, tc := range map[string]struct{ contentType, payload string }{
		"malformed json": {"application/json", `{"fobo_account": `},
		"json array":     {"application/json", `[1, 2]`},
		"no json":        {"text/plain", `fobo_account=1`},
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/fobo-account-ownerships", strings.NewReader(tc.payload))
			req.Header.Set("Content-Type", tc.contentType)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			var out envelope
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
			assert.Equal(t, "Invalid request body", out.Error.Message)
		})
	}

	var count int64
	require.NoError(t, db.Model(&domain.Ownership{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestCreate_LegacyBackupFlag(t *testing.T) {
	app, _, fx, contact := setupOwnershipsTest(t)

	code, body := send(t, app, "POST", "/fobo-account-ownerships", map[string]interface{}{
		"fobo_account":    fx.Account.ID,
		"contact":         contact.ID,
		"is_backup_owner": false,
		"start_date":      "2024-06-01T00:00:00Z",
	})
	require.Equal(t, 201, code, body.Error.Message)
	assert.Equal(t, "PRIMARY", body.Data["role"])
	assert.Nil(t, body.Data["end_date"])

	code, _ = send(t, app, "POST", "/fobo-account-ownerships", map[string]interface{}{
		"fobo_account": fx.Account.ID,
		"contact":      contact.ID,
		"role":         "owner",
		"start_date":   "2024-06-01",
	})
	assert.Equal(t, 400, code)
}

func TestUpdateTemporaryOwner(t *testing.T) {
	app, _, fx, _ := setupOwnershipsTest(t)
	target := "/fobo-account-ownerships/" + fx.Backup.ID.String() + "/update-temporary-owner"

	code, body := send(t, app, "PATCH", target, map[string]interface{}{"ownership_comment": "handover"})
	require.Equal(t, 200, code, body.Error.Message)
	assert.Equal(t, "handover", body.Data["ownership_comment"])
	assert.Nil(t, body.Data["end_date"])

	code, body = send(t, app, "PATCH", target, map[string]interface{}{"end_date": "2024-07-01T07:15:22"})
	require.Equal(t, 200, code, body.Error.Message)
	assert.Equal(t, "handover", body.Data["ownership_comment"])
	end, err := time.Parse(time.RFC3339Nano, body.Data["end_date"].(string))
	require.NoError(t, err)
	assert.True(t, end.Equal(time.Date(2024, 7, 1, 7, 15, 22, 0, time.UTC)))

	code, body = send(t, app, "PATCH", target, map[string]interface{}{"end_date": nil, "ownership_comment": nil})
	require.Equal(t, 200, code, body.Error.Message)
	assert.Nil(t, body.Data["end_date"])
	assert.Nil(t, body.Data["ownership_comment"])

	code, _ = send(t, app, "PATCH", target, map[string]interface{}{"end_date": "2020-01-01"})
	assert.Equal(t, 400, code)

	code, _ = send(t, app, "PATCH", target, map[string]interface{}{})
	assert.Equal(t, 400, code)

	code, _ = send(t, app, "PATCH", target, map[string]interface{}{"start_date": nil})
	assert.Equal(t, 400, code)

	code, _ = send(t, app, "PATCH", "/fobo-account-ownerships/0b6f1d7a-4c1e-4a55-9f7d-2d3b8c1e0a11/update-temporary-owner",
		map[string]interface{}{"ownership_comment": "x"})
	assert.Equal(t, 404, code)
}

func TestGet_ReturnsStatus(t *testing.T) {
	app, _, fx, _ := setupOwnershipsTest(t)

	code, body := send(t, app, "GET", "/fobo-account-ownerships/"+fx.Primary.ID.String(), nil)
	require.Equal(t, 200, code)
	assert.Equal(t, "EXPIRED", body.Data["status"])

	code, body = send(t, app, "GET", "/fobo-account-ownerships/"+fx.Backup.ID.String(), nil)
	require.Equal(t, 200, code)
	assert.Equal(t, "ACTIVE", body.Data["status"])

	code, _ = send(t, app, "GET", "/fobo-account-ownerships/not-a-uuid", nil)
	assert.Equal(t, 400, code)
}

func TestListByAccount(t *testing.T) {
	app, _, fx, _ := setupOwnershipsTest(t)

	req := httptest.NewRequest("GET", "/fobo-accounts/"+strconv.FormatInt(fx.Account.ID, 10)+"/ownerships", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 2)
	statuses := []interface{}{body.Data[0]["status"], body.Data[1]["status"]}
	assert.ElementsMatch(t, []interface{}{"EXPIRED", "ACTIVE"}, statuses)

	code, _ := send(t, app, "GET", "/fobo-accounts/424242/ownerships", nil)
	assert.Equal(t, 404, code)
}
