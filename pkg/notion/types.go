package notion

import (
	"encoding/json"
	"fmt"
)

// Property value types as they appear in the Notion API's "type" field.
const (
	PropertyTypeTitle    = "title"
	PropertyTypeRichText = "rich_text"
	PropertyTypeSelect   = "select"
)

// Parent identifies the workspace object a resource is created under.
type Parent struct {
	Type       string `json:"type,omitempty"`
	PageID     string `json:"page_id,omitempty"`
	DatabaseID string `json:"database_id,omitempty"`
}

// Text is the literal content of a rich text run.
type Text struct {
	Content string `json:"content"`
}

// RichText is one run of rich text. On writes only Text is set; responses
// additionally carry the rendered PlainText.
type RichText struct {
	Type      string `json:"type,omitempty"`
	Text      *Text  `json:"text,omitempty"`
	PlainText string `json:"plain_text,omitempty"`
}

// SelectOption names one option of a select property.
type SelectOption struct {
	Name string `json:"name"`
}

// SelectSchema is the configuration of a select property. A nil Options
// slice marshals to an empty object, which is how databases are created;
// schema updates send an explicit empty options list instead.
type SelectSchema struct {
	Options []SelectOption
}

func (s SelectSchema) MarshalJSON() ([]byte, error) {
	if s.Options == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(struct {
		Options []SelectOption `json:"options"`
	}{Options: s.Options})
}

func (s *SelectSchema) UnmarshalJSON(data []byte) error {
	var raw struct {
		Options []SelectOption `json:"options"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Options = raw.Options
	return nil
}

// PropertySchema is one property fragment of a database schema. Exactly one
// of the kind fields is set; it marshals to Notion's {"title":{}},
// {"rich_text":{}} or {"select":{...}} shape.
type PropertySchema struct {
	Title    *struct{}     `json:"title,omitempty"`
	RichText *struct{}     `json:"rich_text,omitempty"`
	Select   *SelectSchema `json:"select,omitempty"`
}

// IsTitle reports whether the fragment declares a title property.
func (p PropertySchema) IsTitle() bool {
	return p.Title != nil
}

// PropertyValue is one property on a page: the typed value on reads and the
// value payload on writes.
type PropertyValue struct {
	Type     string        `json:"type,omitempty"`
	Title    []RichText    `json:"title,omitempty"`
	RichText []RichText    `json:"rich_text,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
}

// Database is the subset of a Notion database object this bridge uses.
type Database struct {
	ID string `json:"id"`
}

// Page is the subset of a Notion page object this bridge uses.
type Page struct {
	ID         string                   `json:"id"`
	Properties map[string]PropertyValue `json:"properties"`
}

// CreateDatabaseRequest is the payload for POST /v1/databases.
type CreateDatabaseRequest struct {
	Parent     Parent                    `json:"parent"`
	Title      []RichText                `json:"title"`
	Properties map[string]PropertySchema `json:"properties"`
}

// UpdateDatabaseRequest is the payload for PATCH /v1/databases/{id}.
type UpdateDatabaseRequest struct {
	Properties map[string]PropertySchema `json:"properties"`
}

// CreatePageRequest is the payload for POST /v1/pages.
type CreatePageRequest struct {
	Parent     Parent                   `json:"parent"`
	Properties map[string]PropertyValue `json:"properties"`
}

// QueryDatabaseResponse is the result of POST /v1/databases/{id}/query.
type QueryDatabaseResponse struct {
	Results []Page `json:"results"`
}

// APIError is a non-2xx response from the Notion API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion API error (%d): %s", e.StatusCode, e.Message)
}
