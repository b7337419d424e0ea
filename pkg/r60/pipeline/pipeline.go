// Package pipeline sequences the per-message processing flow: fetch the
// attachment, assemble the submission, check for duplicates, persist,
// archive, notify and label. One failing message never aborts the batch.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/r60proc/r60proc-go/pkg/r60"
	"github.com/r60proc/r60proc-go/pkg/r60/archive"
	"github.com/r60proc/r60proc-go/pkg/r60/mailbox"
	"github.com/r60proc/r60proc-go/pkg/r60/models"
	"github.com/r60proc/r60proc-go/pkg/r60/registry"
	"github.com/r60proc/r60proc-go/pkg/r60/store"
)

// DuplicateError reports a submission number already present in the
// store. It is an expected, non-fatal outcome: the message still gets
// notified and labeled, with the duplicate label.
type DuplicateError struct {
	Number string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("form %s was already processed", e.Number)
}

// Config is the pipeline's configuration surface.
type Config struct {
	// Query and Limit select which inbound messages a run processes.
	Query string
	Limit int
	// Labels applied to a message after its outcome is known.
	LabelProcessed string
	LabelError     string
	LabelDuplicate string
	// NotifyTo receives outcome notifications.
	NotifyTo string
	// ArchiveRoot is the fixed top folder of the archive hierarchy.
	ArchiveRoot string
	// TempDir holds the per-message working copy of the attachment.
	// Empty means the system temp directory.
	TempDir string
	// Templates render outcome notifications. Zero value means defaults.
	Templates Templates
}

// Processor runs the submission pipeline over a message source.
type Processor struct {
	cfg      Config
	source   mailbox.Source
	store    store.TabularStore
	archiver archive.Archiver
	registry *registry.Registry
	log      *slog.Logger
	now      func() time.Time
}

// New wires a processor. A nil logger falls back to slog.Default().
func New(cfg Config, src mailbox.Source, st store.TabularStore, arc archive.Archiver, reg *registry.Registry, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ArchiveRoot == "" {
		cfg.ArchiveRoot = archive.DefaultRoot
	}
	cfg.Templates = cfg.Templates.withDefaults()
	return &Processor{
		cfg:      cfg,
		source:   src,
		store:    st,
		archiver: arc,
		registry: reg,
		log:      log,
		now:      time.Now,
	}
}

// Run processes one batch: every message the search returns, in order,
// each isolated from the others. It returns per-outcome counts.
func (p *Processor) Run(ctx context.Context) (models.Summary, error) {
	refs, err := p.source.Search(ctx, p.cfg.Query, p.cfg.Limit)
	if err != nil {
		return models.Summary{}, fmt.Errorf("search messages: %w", err)
	}
	if len(refs) == 0 {
		p.log.Info("no messages to process")
		return models.Summary{}, nil
	}
	p.log.Info("processing batch", "messages", len(refs))

	var summary models.Summary
	for i, ref := range refs {
		p.log.Info("processing message",
			"message", ref.ID, "index", i+1, "total", len(refs))

		out, sub := p.processOne(ctx, ref)
		p.finish(ctx, out, sub)

		switch out.Status {
		case models.OutcomeProcessed:
			summary.Processed++
		case models.OutcomeDuplicate:
			summary.Duplicates++
		default:
			summary.Errors++
		}
	}

	p.log.Info("run complete",
		"processed", summary.Processed,
		"duplicates", summary.Duplicates,
		"errors", summary.Errors,
		"total", summary.Total())
	return summary, nil
}

// processOne walks one message through fetch, assemble, duplicate check,
// persist and archive. Any failure routes to an error outcome; the
// temporary attachment copy is removed on every exit path.
func (p *Processor) processOne(ctx context.Context, ref mailbox.MessageRef) (models.Outcome, *models.Submission) {
	att, err := p.source.FetchAttachment(ctx, ref.ID)
	if err != nil {
		p.log.Error("fetch attachment failed", "message", ref.ID, "err", err)
		return errorOutcome(ref.ID, "", err), nil
	}

	tmp, err := os.CreateTemp(p.cfg.TempDir, "r60-*.xlsx")
	if err != nil {
		return errorOutcome(ref.ID, att.Name, err), nil
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(att.Data); err != nil {
		tmp.Close()
		return errorOutcome(ref.ID, att.Name, err), nil
	}
	if err := tmp.Close(); err != nil {
		return errorOutcome(ref.ID, att.Name, err), nil
	}

	sub, err := r60.Assemble(tmp.Name(), p.registry, r60.Options{Logger: p.log})
	if err != nil {
		p.log.Error("extraction failed", "message", ref.ID, "file", att.Name, "err", err)
		return errorOutcome(ref.ID, att.Name, err), nil
	}
	sub.SourceFile = att.Name

	exists, err := p.store.FindByNumber(ctx, sub.Number())
	if err != nil {
		return errorOutcome(ref.ID, att.Name, err), sub
	}
	if exists {
		p.log.Warn("duplicate submission", "message", ref.ID,
			"err", &DuplicateError{Number: sub.Number()})
		return models.Outcome{
			Status:    models.OutcomeDuplicate,
			MessageID: ref.ID,
			Number:    sub.Number(),
			FileName:  att.Name,
		}, sub
	}

	variant, err := p.registry.Lookup(sub.Variant)
	if err != nil {
		return errorOutcome(ref.ID, att.Name, err), sub
	}
	written, err := p.store.AppendRows(ctx, store.RowsFor(sub, variant, p.now()))
	if err != nil {
		return errorOutcome(ref.ID, att.Name, err), sub
	}
	p.log.Info("rows written", "message", ref.ID, "number", sub.Number(), "rows", written)

	info, err := p.archive(ctx, sub, att.Data)
	if err != nil {
		p.log.Error("archive failed", "message", ref.ID, "number", sub.Number(), "err", err)
		return errorOutcome(ref.ID, att.Name, err), sub
	}
	sub.ArchiveLink = info.Link
	p.log.Info("file archived", "message", ref.ID, "name", info.Name, "link", info.Link)

	return models.Outcome{
		Status:      models.OutcomeProcessed,
		MessageID:   ref.ID,
		Number:      sub.Number(),
		RowsWritten: written,
		FileName:    att.Name,
	}, sub
}

func (p *Processor) archive(ctx context.Context, sub *models.Submission, data []byte) (archive.UploadInfo, error) {
	now := p.now()
	folder, err := p.archiver.EnsurePath(ctx, archive.PathFor(p.cfg.ArchiveRoot, sub, now)...)
	if err != nil {
		return archive.UploadInfo{}, err
	}
	return p.archiver.Upload(ctx, folder, archive.FileNameFor(sub, now), data)
}

// finish notifies the configured recipient and labels the source message.
// Labeling happens regardless of notification errors: a message must
// never be left unlabeled after a completed run.
func (p *Processor) finish(ctx context.Context, out models.Outcome, sub *models.Submission) {
	subject, body, err := p.cfg.Templates.render(out, sub)
	if err != nil {
		p.log.Error("render notification failed", "message", out.MessageID, "err", err)
	} else if err := p.source.Send(ctx, p.cfg.NotifyTo, subject, body); err != nil {
		p.log.Error("send notification failed", "message", out.MessageID, "err", err)
	}

	if err := p.source.ApplyLabel(ctx, out.MessageID, p.labelFor(out.Status)); err != nil {
		p.log.Error("apply label failed", "message", out.MessageID, "err", err)
	}
	if err := p.source.MarkRead(ctx, out.MessageID); err != nil {
		p.log.Error("mark read failed", "message", out.MessageID, "err", err)
	}
}

func (p *Processor) labelFor(status models.OutcomeStatus) string {
	switch status {
	case models.OutcomeProcessed:
		return p.cfg.LabelProcessed
	case models.OutcomeDuplicate:
		return p.cfg.LabelDuplicate
	default:
		return p.cfg.LabelError
	}
}

func errorOutcome(messageID, fileName string, err error) models.Outcome {
	return models.Outcome{
		Status:    models.OutcomeError,
		MessageID: messageID,
		FileName:  fileName,
		Error:     err.Error(),
	}
}
