package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ajeetraina/Ace-Step-v1.5/pkg/silicon"
)

func TestSettingsHandler(t *testing.T) {
	opt := silicon.New(zap.NewNop())
	handler := settingsHandler(opt, zap.NewNop())

	t.Run("returns JSON report", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/settings", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var report silicon.Report
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		assert.NotEmpty(t, report.Platform)
		assert.NotEmpty(t, report.Settings.Device)
		assert.GreaterOrEqual(t, report.Settings.BatchSize, 1)
		assert.LessOrEqual(t, report.Settings.BatchSize, 4)
	})

	t.Run("rejects non-GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/settings", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}
