package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTableHandler(t *testing.T) {
	t.Run("creates a database and returns its id", func(t *testing.T) {
		mockNotion := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/v1/databases", r.URL.Path)

			var reqBody map[string]any
			err := json.NewDecoder(r.Body).Decode(&reqBody)
			require.NoError(t, err)

			parent := reqBody["parent"].(map[string]any)
			assert.Equal(t, "parent-page", parent["page_id"])

			// No declared title field, so "Name" must have been injected.
			props := reqBody["properties"].(map[string]any)
			require.Contains(t, props, "Name")
			nameProp := props["Name"].(map[string]any)
			assert.Contains(t, nameProp, "title")

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"id": "db-123"})
		}))
		defer mockNotion.Close()

		srv := testServer(t, mockNotion.URL)

		body, _ := json.Marshal(CreateTableRequest{
			Table: "Trees",
			Fields: map[string]string{
				"Notes":  "rich_text",
				"Status": "select",
			},
		})
		req := httptest.NewRequest(http.MethodPost, "/create_table", bytes.NewReader(body))
		w := httptest.NewRecorder()

		CreateTableHandler(srv).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp CreateTableResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "OK", resp.Message)
		assert.Equal(t, "db-123", resp.DatabaseID)
	})

	t.Run("missing table or fields is a 400 with no vendor call", func(t *testing.T) {
		var calls atomic.Int32
		mockNotion := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer mockNotion.Close()

		srv := testServer(t, mockNotion.URL)

		for _, body := range []string{
			`{}`,
			`{"table":"Trees"}`,
			`{"table":"Trees","fields":{}}`,
			`{"fields":{"Notes":"rich_text"}}`,
			`not json at all`,
		} {
			req := httptest.NewRequest(http.MethodPost, "/create_table", bytes.NewReader([]byte(body)))
			w := httptest.NewRecorder()

			CreateTableHandler(srv).ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
			assert.JSONEq(t, `{"error":"Missing table name or fields"}`, w.Body.String())
		}
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("vendor failure after retry is a 500 with the final error", func(t *testing.T) {
		var calls atomic.Int32
		mockNotion := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"message": "notion is down"})
		}))
		defer mockNotion.Close()

		srv := testServer(t, mockNotion.URL)

		body, _ := json.Marshal(CreateTableRequest{
			Table:  "Trees",
			Fields: map[string]string{"Tree": "title"},
		})
		req := httptest.NewRequest(http.MethodPost, "/create_table", bytes.NewReader(body))
		w := httptest.NewRecorder()

		CreateTableHandler(srv).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, int32(2), calls.Load())

		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "notion is down")
	})

	t.Run("invalid HTTP method returns method not allowed", func(t *testing.T) {
		srv := testServer(t, "http://unused.invalid")

		req := httptest.NewRequest(http.MethodGet, "/create_table", nil)
		w := httptest.NewRecorder()

		CreateTableHandler(srv).ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestUpdateTableHandler(t *testing.T) {
	t.Run("updates the schema and echoes the database id", func(t *testing.T) {
		mockNotion := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "PATCH", r.Method)
			assert.Equal(t, "/v1/databases/db-123", r.URL.Path)

			var reqBody map[string]any
			err := json.NewDecoder(r.Body).Decode(&reqBody)
			require.NoError(t, err)

			props := reqBody["properties"].(map[string]any)
			statusProp := props["Status"].(map[string]any)
			sel := statusProp["select"].(map[string]any)
			// Schema updates send an explicit empty options list.
			options, ok := sel["options"].([]any)
			require.True(t, ok)
			assert.Empty(t, options)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"id": "db-123"})
		}))
		defer mockNotion.Close()

		srv := testServer(t, mockNotion.URL)

		body, _ := json.Marshal(UpdateTableRequest{
			DatabaseID: "db-123",
			Fields:     map[string]string{"Status": "select"},
		})
		req := httptest.NewRequest(http.MethodPatch, "/update_table", bytes.NewReader(body))
		w := httptest.NewRecorder()

		UpdateTableHandler(srv).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp UpdateTableResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Updated", resp.Message)
		assert.Equal(t, "db-123", resp.DatabaseID)
	})

	t.Run("missing database_id or fields is a 400", func(t *testing.T) {
		srv := testServer(t, "http://unused.invalid")

		req := httptest.NewRequest(http.MethodPatch, "/update_table",
			bytes.NewReader([]byte(`{"database_id":"db-123"}`)))
		w := httptest.NewRecorder()

		UpdateTableHandler(srv).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing database_id or fields"}`, w.Body.String())
	})

	t.Run("invalid HTTP method returns method not allowed", func(t *testing.T) {
		srv := testServer(t, "http://unused.invalid")

		req := httptest.NewRequest(http.MethodPost, "/update_table", nil)
		w := httptest.NewRecorder()

		UpdateTableHandler(srv).ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
