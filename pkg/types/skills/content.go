package skills

import (
	"encoding/json"
	"strings"
)

// Mime types used by skill content and artifacts
const (
	MimeTypeText = "text/plain"
	MimeTypeJSON = "application/json"
)

// Content is the payload of one conversational turn
type Content struct {
	MimeType string          `json:"mime_type"`
	Text     string          `json:"text,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// TextContent creates a plain text content
func TextContent(text string) Content {
	return Content{MimeType: MimeTypeText, Text: text}
}

// JSONContent creates a JSON content from raw bytes
func JSONContent(data []byte) Content {
	return Content{MimeType: MimeTypeJSON, Data: json.RawMessage(data)}
}

// IsEmpty reports whether the content carries no text and no data
func (c Content) IsEmpty() bool {
	return strings.TrimSpace(c.Text) == "" && len(c.Data) == 0
}

// String returns the text of the content, or the raw data for JSON content
func (c Content) String() string {
	if c.Text != "" {
		return c.Text
	}
	return string(c.Data)
}
