// Package notes maps the generic table/row vocabulary of the Chirpy client
// onto Notion property schemas and values. Everything here is pure; the
// handlers own I/O.
package notes

import (
	"github.com/chirpy-labs/arbor/pkg/notion"
)

// FieldKind is the declared type of a table field.
type FieldKind int

const (
	// KindRichText is the default kind; unrecognized declarations coerce
	// here rather than being rejected.
	KindRichText FieldKind = iota
	KindTitle
	KindSelect
)

// TitleFieldName is the field synthesized when a schema declares no title.
const TitleFieldName = "Name"

// ParseFieldKind maps a declared kind string to a FieldKind. Anything
// other than "title", "rich_text" or "select" falls back to rich text.
func ParseFieldKind(s string) FieldKind {
	switch s {
	case "title":
		return KindTitle
	case "rich_text":
		return KindRichText
	case "select":
		return KindSelect
	default:
		return KindRichText
	}
}

// Schema returns the property fragment used when creating a database.
func (k FieldKind) Schema() notion.PropertySchema {
	switch k {
	case KindTitle:
		return notion.PropertySchema{Title: &struct{}{}}
	case KindSelect:
		return notion.PropertySchema{Select: &notion.SelectSchema{}}
	default:
		return notion.PropertySchema{RichText: &struct{}{}}
	}
}

// UpdateSchema returns the property fragment used when updating a database
// schema. The only difference from Schema is that select fragments carry an
// explicit empty options list.
func (k FieldKind) UpdateSchema() notion.PropertySchema {
	if k == KindSelect {
		return notion.PropertySchema{
			Select: &notion.SelectSchema{Options: []notion.SelectOption{}},
		}
	}
	return k.Schema()
}

// SchemaForFields maps declared fields to database property schemas.
// Notion requires exactly one title property; if none of the declared
// fields resolves to a title, a "Name" title field is added.
func SchemaForFields(fields map[string]string) map[string]notion.PropertySchema {
	properties := make(map[string]notion.PropertySchema, len(fields)+1)
	for name, kind := range fields {
		properties[name] = ParseFieldKind(kind).Schema()
	}

	hasTitle := false
	for _, p := range properties {
		if p.IsTitle() {
			hasTitle = true
			break
		}
	}
	if !hasTitle {
		properties[TitleFieldName] = KindTitle.Schema()
	}

	return properties
}

// UpdateSchemaForFields maps declared fields to schema-update fragments.
// No title field is synthesized here: the database already has one.
func UpdateSchemaForFields(fields map[string]string) map[string]notion.PropertySchema {
	properties := make(map[string]notion.PropertySchema, len(fields))
	for name, kind := range fields {
		properties[name] = ParseFieldKind(kind).UpdateSchema()
	}
	return properties
}
