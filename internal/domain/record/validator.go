package record

import "strings"

// CreateData is a validated creation payload produced by NormalizeCreate.
type CreateData struct {
	Name    string
	Message string
	Note    *string
}

// NormalizeCreate validates and normalizes a raw creation mapping. Name and
// message are required and must be non-blank after trimming; note is
// optional and a blank note is stored as absent.
func NormalizeCreate(input map[string]any) (CreateData, error) {
	name := trimmedString(input["name"])
	message := trimmedString(input["message"])
	if name == "" || message == "" {
		return CreateData{}, &ValidationError{Message: "Name and message are required"}
	}

	return CreateData{
		Name:    name,
		Message: message,
		Note:    normalizeNote(input["note"]),
	}, nil
}

// ApplyPartialUpdate mutates rec from the provided fields. Name and message
// change only when present and non-blank after trimming; a blank value
// keeps the old one rather than failing. Note changes whenever the key is
// present, with blank clearing it. UpdatedAt is reset unconditionally, even
// when no visible field changed.
func ApplyPartialUpdate(rec *Record, input map[string]any) error {
	if input == nil {
		return &ValidationError{Message: "No data provided"}
	}

	if v := trimmedString(input["name"]); v != "" {
		rec.Name = v
	}
	if v := trimmedString(input["message"]); v != "" {
		rec.Message = v
	}
	if raw, ok := input["note"]; ok {
		rec.Note = normalizeNote(raw)
	}

	rec.UpdatedAt = Now()
	return nil
}

func trimmedString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func normalizeNote(v any) *string {
	s, _ := v.(string)
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
