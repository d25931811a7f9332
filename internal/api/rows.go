package api

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/chirpy-labs/arbor/internal/notes"
	"github.com/chirpy-labs/arbor/internal/server"
)

// InsertRequest contains the fields that are allowed to make the insert
// request.
type InsertRequest struct {
	DatabaseID string            `json:"database_id"`
	Values     map[string]string `json:"values"`
}

func (r *InsertRequest) validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DatabaseID, validation.Required),
		validation.Field(&r.Values, validation.Required),
	)
}

// InsertResponse is the success envelope for insert.
type InsertResponse struct {
	Message string `json:"message"`
	PageID  string `json:"page_id"`
}

// GetRowsRequest contains the fields that are allowed to make the get_rows
// request.
type GetRowsRequest struct {
	DatabaseID string `json:"database_id"`
}

func (r *GetRowsRequest) validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DatabaseID, validation.Required),
	)
}

// InsertHandler inserts one record into a database.
func InsertHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		req := &InsertRequest{}
		decodeRequest(r, req)
		if err := req.validate(); err != nil {
			srv.Logger.Error("invalid insert request", "error", err)
			respondError(w, srv.Logger, http.StatusBadRequest,
				"Missing database_id or values")
			return
		}

		properties := notes.EncodeValues(req.Values)
		page, err := srv.Notion.CreatePage(r.Context(), req.DatabaseID, properties)
		if err != nil {
			srv.Logger.Error("error inserting record",
				"error", err, "database_id", req.DatabaseID)
			respondError(w, srv.Logger, http.StatusInternalServerError, err.Error())
			return
		}

		srv.Logger.Info("record inserted",
			"page_id", page.ID, "database_id", req.DatabaseID)
		respondJSON(w, srv.Logger, http.StatusOK, InsertResponse{
			Message: "OK",
			PageID:  page.ID,
		})
	})
}

// GetRowsHandler fetches all records of a database in one unpaginated call
// and returns them as decoded rows, in vendor response order.
func GetRowsHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		req := &GetRowsRequest{}
		decodeRequest(r, req)
		if err := req.validate(); err != nil {
			srv.Logger.Error("invalid get_rows request", "error", err)
			respondError(w, srv.Logger, http.StatusBadRequest,
				"Missing database_id")
			return
		}

		pages, err := srv.Notion.QueryDatabase(r.Context(), req.DatabaseID)
		if err != nil {
			srv.Logger.Error("error querying database",
				"error", err, "database_id", req.DatabaseID)
			respondError(w, srv.Logger, http.StatusInternalServerError, err.Error())
			return
		}

		rows := make([]map[string]string, 0, len(pages))
		for _, page := range pages {
			rows = append(rows, notes.DecodeRow(page.Properties))
		}

		respondJSON(w, srv.Logger, http.StatusOK, rows)
	})
}
