package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felipeatepam/backend-rest/internal/config"
	"github.com/felipeatepam/backend-rest/internal/domain/record"
)

// memRepo is an in-memory Repository standing in for the relational store.
// IDs grow monotonically and are never reused after deletion.
type memRepo struct {
	mu      sync.Mutex
	seq     int
	records map[int]record.Record
	err     error
}

func newMemRepo() *memRepo {
	return &memRepo{records: make(map[int]record.Record)}
}

func (m *memRepo) FindAll(_ context.Context) ([]record.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	records := make([]record.Record, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (m *memRepo) FindByID(_ context.Context, id int) (*record.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}

	rec, ok := m.records[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	return &rec, nil
}

func (m *memRepo) Insert(_ context.Context, rec *record.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	m.seq++
	rec.ID = m.seq
	m.records[rec.ID] = *rec
	return nil
}

func (m *memRepo) Update(_ context.Context, rec *record.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	if _, ok := m.records[rec.ID]; !ok {
		return record.ErrNotFound
	}
	m.records[rec.ID] = *rec
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}

	if _, ok := m.records[id]; !ok {
		return record.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *memRepo) failWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func newTestServer(t *testing.T) (*httptest.Server, *memRepo) {
	t.Helper()

	repo := newMemRepo()
	mux := New(repo, slog.Default(), &config.Config{Env: config.EnvLocal})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, repo
}

func doJSON(t *testing.T, method, url string, body []byte) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func createRecord(t *testing.T, srv *httptest.Server, payload string) map[string]any {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/records", []byte(payload))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Record API is running", body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestCreateRecord(t *testing.T) {
	srv, _ := newTestServer(t)

	body := createRecord(t, srv, `{"name":" Alice ","message":"hello"}`)

	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, "hello", body["message"])
	assert.Nil(t, body["note"])
	assert.Equal(t, body["createdAt"], body["updatedAt"])
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{6}Z$`, body["createdAt"])

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t,
		[]string{"id", "name", "message", "note", "createdAt", "updatedAt"},
		keys, "response carries exactly the record fields")
}

func TestCreateRecord_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "missing name", payload: `{"message":"hello"}`},
		{name: "blank name", payload: `{"name":"   ","message":"hello"}`},
		{name: "missing message", payload: `{"name":"Alice"}`},
		{name: "empty body", payload: ``},
		{name: "not json", payload: `nope`},
		{name: "json array", payload: `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, repo := newTestServer(t)

			resp, body := doJSON(t, http.MethodPost, srv.URL+"/api/records", []byte(tt.payload))

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "Name and message are required", body["error"])
			assert.Empty(t, repo.records, "nothing may be persisted")
		})
	}
}

func TestListRecords_RoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/records", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, []any{}, body["records"])

	created := createRecord(t, srv, `{"name":"A","message":"B"}`)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/api/records", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["total"])

	records := body["records"].([]any)
	require.Len(t, records, 1)
	assert.Equal(t, created, records[0].(map[string]any))
}

func TestUpdateRecord_BlankNameIgnored(t *testing.T) {
	srv, _ := newTestServer(t)
	created := createRecord(t, srv, `{"name":"Alice","message":"hello"}`)

	// Run into the next microsecond so updatedAt visibly advances.
	time.Sleep(time.Millisecond)

	resp, body := doJSON(t, http.MethodPut, srv.URL+"/api/records/1", []byte(`{"name":""}`))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Record updated successfully", body["message"])

	rec := body["record"].(map[string]any)
	assert.Equal(t, "Alice", rec["name"])
	assert.Equal(t, created["createdAt"], rec["createdAt"])
	assert.NotEqual(t, created["updatedAt"], rec["updatedAt"], "updatedAt must advance")
	assert.Greater(t, rec["updatedAt"], rec["createdAt"])
}

func TestUpdateRecord_ClearNote(t *testing.T) {
	srv, _ := newTestServer(t)
	created := createRecord(t, srv, `{"name":"Alice","message":"hello","note":"keep"}`)
	require.Equal(t, "keep", created["note"])

	resp, body := doJSON(t, http.MethodPut, srv.URL+"/api/records/1", []byte(`{"note":""}`))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	rec := body["record"].(map[string]any)
	assert.Nil(t, rec["note"])
}

func TestUpdateRecord_NotFound(t *testing.T) {
	srv, repo := newTestServer(t)

	resp, body := doJSON(t, http.MethodPut, srv.URL+"/api/records/99", []byte(`{"name":"Bob"}`))

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Record not found", body["error"])
	assert.Empty(t, repo.records)
}

func TestUpdateRecord_NoData(t *testing.T) {
	srv, _ := newTestServer(t)
	createRecord(t, srv, `{"name":"Alice","message":"hello"}`)

	for _, payload := range [][]byte{nil, []byte(`not json`), []byte(`[1,2,3]`)} {
		resp, body := doJSON(t, http.MethodPut, srv.URL+"/api/records/1", payload)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "No data provided", body["error"])
	}
}

func TestUpdateRecord_NoData_UnknownID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPut, srv.URL+"/api/records/99", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Record not found", body["error"])
}

func TestDeleteRecord(t *testing.T) {
	srv, _ := newTestServer(t)
	createRecord(t, srv, `{"name":"Alice","message":"hello"}`)

	resp, body := doJSON(t, http.MethodDelete, srv.URL+"/api/records/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Record deleted successfully", body["message"])

	// The id resolves to "not found" from now on.
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/api/records/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/api/records/1", []byte(`{"name":"Bob"}`))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecordIDsNeverReused(t *testing.T) {
	srv, _ := newTestServer(t)

	first := createRecord(t, srv, `{"name":"Alice","message":"hello"}`)
	resp, _ := doJSON(t, http.MethodDelete, srv.URL+"/api/records/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	second := createRecord(t, srv, `{"name":"Bob","message":"bye"}`)

	assert.Greater(t, second["id"], first["id"])
}

func TestUnroutedPath(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/unknown", nil)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Endpoint not found", body["error"])
}

func TestStorageFailures(t *testing.T) {
	srv, repo := newTestServer(t)
	createRecord(t, srv, `{"name":"Alice","message":"hello"}`)

	repo.failWith(assert.AnError)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/api/records", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to list records", body["error"])

	resp, body = doJSON(t, http.MethodPost, srv.URL+"/api/records", []byte(`{"name":"B","message":"C"}`))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to create record", body["error"])

	resp, body = doJSON(t, http.MethodPut, srv.URL+"/api/records/1", []byte(`{"name":"B"}`))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to update record", body["error"])

	resp, body = doJSON(t, http.MethodDelete, srv.URL+"/api/records/1", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to delete record", body["error"])
}
