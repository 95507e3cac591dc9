package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/hireloop/internal/testutil"
)

func decodeReadiness(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func TestHealthHandler_Readyz(t *testing.T) {
	t.Run("shared handle without billing", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		defer testutil.CleanupDB(db)

		rr := httptest.NewRecorder()
		NewHealthHandler(db, db, false, testutil.NewTestLogger()).Readyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		data := decodeReadiness(t, rr)["data"].(map[string]interface{})
		assert.Equal(t, "ready", data["status"])
		assert.Equal(t, "shared", data["webhook_database"])
		assert.Equal(t, "disabled", data["billing"])
	})

	t.Run("unreachable webhook database", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		defer testutil.CleanupDB(db)
		serviceDB := testutil.NewTestDB(t)
		testutil.CleanupDB(serviceDB)

		rr := httptest.NewRecorder()
		NewHealthHandler(db, serviceDB, true, testutil.NewTestLogger()).Readyz(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		errBody := decodeReadiness(t, rr)["error"].(map[string]interface{})
		assert.Equal(t, "SERVICE_UNAVAILABLE", errBody["code"])
		details := errBody["details"].(map[string]interface{})
		assert.Equal(t, "connected", details["database"])
		assert.Equal(t, "unreachable", details["webhook_database"])
	})
}
