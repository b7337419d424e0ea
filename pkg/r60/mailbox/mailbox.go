// Package mailbox defines the inbound message source the pipeline
// consumes: search, attachment fetch, labeling and outbound sends.
package mailbox

import (
	"context"
	"errors"
)

// ErrNoAttachment indicates a message carried no attachment matching the
// source's file-type filter.
var ErrNoAttachment = errors.New("no attachment found")

// MessageRef identifies one inbound message.
type MessageRef struct {
	ID      string `json:"id"`
	Subject string `json:"subject,omitempty"`
}

// Attachment is a fetched attachment: its original file name and bytes.
type Attachment struct {
	Name string
	Data []byte
}

// Source is the message store the pipeline reads from and reports back to.
type Source interface {
	// Search returns up to limit messages matching query, in source order.
	Search(ctx context.Context, query string, limit int) ([]MessageRef, error)
	// FetchAttachment returns the first attachment of the message that
	// matches the source's file-type filter, or ErrNoAttachment.
	FetchAttachment(ctx context.Context, messageID string) (Attachment, error)
	// ApplyLabel tags the message with a status label.
	ApplyLabel(ctx context.Context, messageID, label string) error
	// MarkRead marks the message read so the next run skips it.
	MarkRead(ctx context.Context, messageID string) error
	// Send delivers an outbound notification.
	Send(ctx context.Context, to, subject, body string) error
}
