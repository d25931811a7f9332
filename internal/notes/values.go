package notes

import (
	"strings"

	"github.com/chirpy-labs/arbor/pkg/notion"
)

// UnsupportedValue is the sentinel decoded for property types the bridge
// does not understand.
const UnsupportedValue = "[unsupported type]"

// EncodeValue maps one scalar field value to its Notion property value. The
// field-name convention is hard-coded for the Chirpy client: "tree" is the
// title field and "status" is a select, case-insensitively; everything else
// is rich text.
func EncodeValue(field, value string) notion.PropertyValue {
	switch strings.ToLower(field) {
	case "tree":
		return notion.PropertyValue{
			Type:  notion.PropertyTypeTitle,
			Title: richText(value),
		}
	case "status":
		return notion.PropertyValue{
			Type:   notion.PropertyTypeSelect,
			Select: &notion.SelectOption{Name: value},
		}
	default:
		return notion.PropertyValue{
			Type:     notion.PropertyTypeRichText,
			RichText: richText(value),
		}
	}
}

// EncodeValues maps a full set of record values via EncodeValue.
func EncodeValues(values map[string]string) map[string]notion.PropertyValue {
	properties := make(map[string]notion.PropertyValue, len(values))
	for name, value := range values {
		properties[name] = EncodeValue(name, value)
	}
	return properties
}

// DecodeRow flattens a page's property map into plain strings. Empty or
// absent sub-fields decode to the empty string; unsupported property types
// decode to the UnsupportedValue sentinel. It never fails.
func DecodeRow(properties map[string]notion.PropertyValue) map[string]string {
	row := make(map[string]string, len(properties))
	for name, value := range properties {
		switch value.Type {
		case notion.PropertyTypeTitle:
			row[name] = firstText(value.Title)
		case notion.PropertyTypeRichText:
			row[name] = firstText(value.RichText)
		case notion.PropertyTypeSelect:
			if value.Select != nil {
				row[name] = value.Select.Name
			} else {
				row[name] = ""
			}
		default:
			row[name] = UnsupportedValue
		}
	}
	return row
}

func firstText(runs []notion.RichText) string {
	if len(runs) == 0 {
		return ""
	}
	if runs[0].Text != nil {
		return runs[0].Text.Content
	}
	return runs[0].PlainText
}

func richText(s string) []notion.RichText {
	return []notion.RichText{
		{Type: "text", Text: &notion.Text{Content: s}},
	}
}
