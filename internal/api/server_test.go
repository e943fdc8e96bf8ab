package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gighunt-engine/internal/models"
	"go-gighunt-engine/internal/scanner"
	"go-gighunt-engine/internal/scheduler"
)

type fakeTrigger struct {
	lastType string
	lastKey  string
}

func (f *fakeTrigger) ManualScan(_ context.Context, scanType string) (*models.ScanRun, error) {
	f.lastType = scanType
	switch scanType {
	case "quick", "full", "deep":
		return &models.ScanRun{TotalSaved: 3}, nil
	}
	return nil, fmt.Errorf("unknown scan type %q", scanType)
}

func (f *fakeTrigger) ScanCategory(_ context.Context, key string) (*models.ScanRun, error) {
	f.lastKey = key
	if key == "community" {
		return &models.ScanRun{TotalSaved: 1}, nil
	}
	return nil, fmt.Errorf("unknown category %q", key)
}

func (f *fakeTrigger) Status() scheduler.Status {
	return scheduler.Status{
		Running: true,
		Jobs:    []scheduler.JobInfo{{Name: "quick-scan", Spec: "*/30 * * * *"}},
		Scanner: scanner.Stats{TotalScans: 7},
	}
}

type fakeLeads struct {
	lastMin   int
	lastLimit int
	leads     []models.Lead
	err       error
}

func (f *fakeLeads) QueryTop(_ context.Context, minScore int, _ time.Time, limit int) ([]models.Lead, error) {
	f.lastMin = minScore
	f.lastLimit = limit
	return f.leads, f.err
}

func serve(t *testing.T, method, path string) (*httptest.ResponseRecorder, *fakeTrigger) {
	t.Helper()
	rec, trigger, _ := serveWith(t, method, path, &fakeLeads{})
	return rec, trigger
}

func serveWith(t *testing.T, method, path string, leads *fakeLeads) (*httptest.ResponseRecorder, *fakeTrigger, *fakeLeads) {
	t.Helper()
	trigger := &fakeTrigger{}
	srv := NewServer(":0", trigger, leads)
	rec := httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec, trigger, leads
}

func TestHealth(t *testing.T) {
	rec, _ := serve(t, http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatus(t *testing.T) {
	rec, _ := serve(t, http.MethodGet, "/api/status")

	require.Equal(t, http.StatusOK, rec.Code)
	var status scheduler.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Running)
	assert.Equal(t, 7, status.Scanner.TotalScans)
	require.Len(t, status.Jobs, 1)
	assert.Equal(t, "quick-scan", status.Jobs[0].Name)
}

func TestManualScanRoutes(t *testing.T) {
	rec, trigger := serve(t, http.MethodPost, "/api/scan/deep")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "deep", trigger.lastType)

	var run models.ScanRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, 3, run.TotalSaved)
}

func TestManualScanRejectsUnknownType(t *testing.T) {
	rec, _ := serve(t, http.MethodPost, "/api/scan/turbo")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown scan type")
}

func TestScanCategoryRoute(t *testing.T) {
	rec, trigger := serve(t, http.MethodPost, "/api/scan/category/community")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "community", trigger.lastKey)
}

func TestScanCategoryRejectsUnknownKey(t *testing.T) {
	rec, _ := serve(t, http.MethodPost, "/api/scan/category/nonsense")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown category")
}

func TestTopLeadsDefaultsAndShape(t *testing.T) {
	leads := &fakeLeads{leads: []models.Lead{{SourceID: "a", Score: 88}}}
	rec, _, _ := serveWith(t, http.MethodGet, "/api/leads/top", leads)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 60, leads.lastMin)
	assert.Equal(t, 20, leads.lastLimit)

	var body struct {
		Count int           `json:"count"`
		Leads []models.Lead `json:"leads"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "a", body.Leads[0].SourceID)
}

func TestTopLeadsQueryOverrides(t *testing.T) {
	leads := &fakeLeads{}
	rec, _, _ := serveWith(t, http.MethodGet, "/api/leads/top?min_score=80&limit=5&hours=6", leads)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 80, leads.lastMin)
	assert.Equal(t, 5, leads.lastLimit)
	assert.Contains(t, rec.Body.String(), `"leads":[]`)
}

func TestScanRequiresPost(t *testing.T) {
	rec, _ := serve(t, http.MethodGet, "/api/scan/quick")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
