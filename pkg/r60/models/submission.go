package models

// Canonical header field names shared by all built-in variants.
const (
	FieldNumber    = "numero_formulario"
	FieldDate      = "fecha"
	FieldRequester = "solicitante"
	FieldArea      = "area"
	FieldNotes     = "observaciones"
)

// Header holds normalized header values keyed by field name.
// Every field declared in the variant's header mapping is present,
// possibly as an empty string.
type Header map[string]any

// LineItem holds the normalized values of one occupied item row,
// keyed by field name.
type LineItem map[string]any

// Submission is one fully extracted form instance: classification,
// header, ordered line items and the originating file name.
type Submission struct {
	// Variant is the identified form layout.
	Variant VariantID `json:"variant"`
	// Header maps field name to normalized value.
	Header Header `json:"header"`
	// Items are the extracted line items in ascending row order.
	Items []LineItem `json:"items"`
	// SourceFile is the original attachment file name.
	SourceFile string `json:"source_file"`
	// ArchiveLink is set after the source file has been archived.
	ArchiveLink string `json:"archive_link,omitempty"`
}

// Number returns the submission number header field as a string.
func (s *Submission) Number() string {
	return stringField(s.Header, FieldNumber)
}

// Requester returns the requester header field as a string.
func (s *Submission) Requester() string {
	return stringField(s.Header, FieldRequester)
}

// Date returns the form date header field as a string.
func (s *Submission) Date() string {
	return stringField(s.Header, FieldDate)
}

func stringField(h Header, field string) string {
	if v, ok := h[field].(string); ok {
		return v
	}
	return ""
}
