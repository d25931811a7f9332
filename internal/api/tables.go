package api

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/chirpy-labs/arbor/internal/notes"
	"github.com/chirpy-labs/arbor/internal/server"
)

// CreateTableRequest contains the fields that are allowed to make the
// create_table request.
type CreateTableRequest struct {
	Table  string            `json:"table"`
	Fields map[string]string `json:"fields"`
}

func (r *CreateTableRequest) validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Table, validation.Required),
		validation.Field(&r.Fields, validation.Required),
	)
}

// CreateTableResponse is the success envelope for create_table.
type CreateTableResponse struct {
	Message    string `json:"message"`
	DatabaseID string `json:"database_id"`
}

// UpdateTableRequest contains the fields that are allowed to make the
// update_table request.
type UpdateTableRequest struct {
	DatabaseID string            `json:"database_id"`
	Fields     map[string]string `json:"fields"`
}

func (r *UpdateTableRequest) validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DatabaseID, validation.Required),
		validation.Field(&r.Fields, validation.Required),
	)
}

// UpdateTableResponse is the success envelope for update_table.
type UpdateTableResponse struct {
	Message    string `json:"message"`
	DatabaseID string `json:"database_id"`
}

// CreateTableHandler creates a Notion database under the configured parent
// page from a generic table description.
func CreateTableHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		req := &CreateTableRequest{}
		decodeRequest(r, req)
		if err := req.validate(); err != nil {
			srv.Logger.Error("invalid create_table request", "error", err)
			respondError(w, srv.Logger, http.StatusBadRequest,
				"Missing table name or fields")
			return
		}

		properties := notes.SchemaForFields(req.Fields)
		db, err := srv.Notion.CreateDatabase(
			r.Context(), srv.Config.Notion.PageID, req.Table, properties)
		if err != nil {
			srv.Logger.Error("error creating database",
				"error", err, "table", req.Table)
			respondError(w, srv.Logger, http.StatusInternalServerError, err.Error())
			return
		}

		srv.Logger.Info("database created",
			"database_id", db.ID, "table", req.Table)
		respondJSON(w, srv.Logger, http.StatusOK, CreateTableResponse{
			Message:    "OK",
			DatabaseID: db.ID,
		})
	})
}

// UpdateTableHandler replaces or merges the named fields' schemas on an
// existing database.
func UpdateTableHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		req := &UpdateTableRequest{}
		decodeRequest(r, req)
		if err := req.validate(); err != nil {
			srv.Logger.Error("invalid update_table request", "error", err)
			respondError(w, srv.Logger, http.StatusBadRequest,
				"Missing database_id or fields")
			return
		}

		properties := notes.UpdateSchemaForFields(req.Fields)
		if _, err := srv.Notion.UpdateDatabase(
			r.Context(), req.DatabaseID, properties); err != nil {
			srv.Logger.Error("error updating database",
				"error", err, "database_id", req.DatabaseID)
			respondError(w, srv.Logger, http.StatusInternalServerError, err.Error())
			return
		}

		srv.Logger.Info("database updated", "database_id", req.DatabaseID)
		respondJSON(w, srv.Logger, http.StatusOK, UpdateTableResponse{
			Message:    "Updated",
			DatabaseID: req.DatabaseID,
		})
	})
}
