package mailbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// DirInbox is a Source backed by a local directory, for development runs
// and tests. Each subdirectory of <root>/new is one message holding its
// attachments; labels are marker files inside the message directory;
// marking read moves the directory to <root>/cur; outbound sends are
// written to <root>/outbox.
type DirInbox struct {
	root   string
	suffix string
}

// NewDirInbox opens (or creates) a directory inbox at root. suffix
// filters attachments by file extension, e.g. ".xlsx".
func NewDirInbox(root, suffix string) (*DirInbox, error) {
	for _, sub := range []string{"new", "cur", "outbox"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create inbox dir: %w", err)
		}
	}
	return &DirInbox{root: root, suffix: strings.ToLower(suffix)}, nil
}

// Search lists unread messages whose directory name contains query
// (empty query matches all), in lexical order, up to limit.
func (d *DirInbox) Search(ctx context.Context, query string, limit int) ([]MessageRef, error) {
	entries, err := os.ReadDir(filepath.Join(d.root, "new"))
	if err != nil {
		return nil, fmt.Errorf("list inbox: %w", err)
	}

	var refs []MessageRef
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(e.Name()), strings.ToLower(query)) {
			continue
		}
		refs = append(refs, MessageRef{ID: e.Name(), Subject: e.Name()})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })

	if limit > 0 && len(refs) > limit {
		refs = refs[:limit]
	}
	return refs, nil
}

// FetchAttachment returns the first attachment matching the suffix filter.
func (d *DirInbox) FetchAttachment(ctx context.Context, messageID string) (Attachment, error) {
	dir := d.messageDir(messageID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Attachment{}, fmt.Errorf("read message %s: %w", messageID, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		if d.suffix == "" || strings.HasSuffix(strings.ToLower(name), d.suffix) {
			data, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				return Attachment{}, fmt.Errorf("read attachment %s: %w", name, err)
			}
			return Attachment{Name: name, Data: data}, nil
		}
	}

	return Attachment{}, fmt.Errorf("%w: message %s", ErrNoAttachment, messageID)
}

// ApplyLabel drops a marker file into the message directory.
func (d *DirInbox) ApplyLabel(ctx context.Context, messageID, label string) error {
	marker := filepath.Join(d.messageDir(messageID), ".label_"+sanitizeLabel(label))
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		return fmt.Errorf("apply label %q: %w", label, err)
	}
	return nil
}

// MarkRead moves the message directory from new to cur.
func (d *DirInbox) MarkRead(ctx context.Context, messageID string) error {
	src := filepath.Join(d.root, "new", messageID)
	dst := filepath.Join(d.root, "cur", messageID)
	if _, err := os.Stat(src); os.IsNotExist(err) {
		// Already read.
		return nil
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("mark read %s: %w", messageID, err)
	}
	return nil
}

// Send writes the notification to the outbox as a plain text file.
func (d *DirInbox) Send(ctx context.Context, to, subject, body string) error {
	content := fmt.Sprintf("To: %s\nSubject: %s\n\n%s\n", to, subject, body)
	path := filepath.Join(d.root, "outbox", uuid.NewString()+".txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write outbox message: %w", err)
	}
	return nil
}

// messageDir resolves a message ID whether it is still unread or already
// moved to cur.
func (d *DirInbox) messageDir(messageID string) string {
	dir := filepath.Join(d.root, "new", messageID)
	if _, err := os.Stat(dir); err == nil {
		return dir
	}
	return filepath.Join(d.root, "cur", messageID)
}

func sanitizeLabel(label string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ':
			return '_'
		}
		return r
	}, label)
}
