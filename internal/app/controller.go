package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultSaveDelay is how long text edits wait before they are persisted.
const DefaultSaveDelay = 300 * time.Millisecond

// saveTimeout bounds a background (debounced) write.
const saveTimeout = 10 * time.Second

// CorruptNotice is shown when stored data could not be used and was reset.
const CorruptNotice = "Saved resume data could not be read and has been reset."

// Exporter produces export files for a record.
type Exporter interface {
	Export(ctx context.Context, rec *types.ResumeRecord, opts export.Options) (*export.Result, error)
	PrintDocument(rec *types.ResumeRecord) (string, error)
}

// Controller owns the resume record. Edits are serialized, persisted after every change
// (text edits through a debounce) and never rolled back when the write fails.
type Controller struct {
	mu       sync.Mutex
	record   *types.ResumeRecord
	store    storage.Store
	key      string
	engine   *rendering.Engine
	exporter Exporter
	logger   *logging.Logger
	saver    *Debouncer
	writeErr error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithExporter sets the export pipeline.
func WithExporter(e Exporter) Option {
	return func(c *Controller) { c.exporter = e }
}

// WithKey overrides storage.RecordKey.
func WithKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.key = key
		}
	}
}

// WithSaveDelay overrides DefaultSaveDelay.
func WithSaveDelay(d time.Duration) Option {
	return func(c *Controller) { c.saver = NewDebouncer(d, c.saveDebounced) }
}

// New creates a controller holding a default record. Call Load to read the stored one.
func New(engine *rendering.Engine, store storage.Store, opts ...Option) *Controller {
	c := &Controller{
		record: types.NewRecord(),
		store:  store,
		key:    storage.RecordKey,
		engine: engine,
		logger: logging.Nop(),
	}
	c.saver = NewDebouncer(DefaultSaveDelay, c.saveDebounced)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the in-memory record with the stored one. Corrupt data is discarded and
// the returned notice tells the user; read failures leave defaults in place and return the error.
func (c *Controller) Load(ctx context.Context) (notice string, err error) {
	decoded, err := storage.LoadRecord(ctx, c.store, c.key)

	var corrupt *storage.CorruptError
	switch {
	case errors.As(err, &corrupt):
		c.logger.Warn("discarded unreadable saved data", "key", c.key, "error", corrupt)
		notice = CorruptNotice
	case err != nil:
		c.logger.Error("failed to read saved data", "key", c.key, "error", err)
		return "", fmt.Errorf("failed to load record: %w", err)
	}

	if decoded.TemplateFallback {
		c.logger.Warn("unknown template in saved data, using default",
			"stored", decoded.StoredTemplateID, "template", decoded.Record.TemplateID)
	}
	if decoded.AssignedIDs > 0 {
		c.logger.Debug("assigned ids to saved entries", "count", decoded.AssignedIDs)
	}

	c.mu.Lock()
	c.record = decoded.Record
	c.mu.Unlock()
	return notice, nil
}

// Snapshot returns a copy of the current record.
func (c *Controller) Snapshot() *types.ResumeRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.record.Clone()
}

// Template returns the config of the current template.
func (c *Controller) Template() templates.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	cfg, _ := templates.Resolve(c.record.TemplateID)
	return cfg
}

// SetPersonal sets one personal field. A *storage.WriteError left by an earlier
// background save is returned once the edit has been applied.
func (c *Controller) SetPersonal(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.record.Data.Personal.Set(field, value); err != nil {
		return err
	}
	c.saver.Trigger()
	return c.takeWriteErrLocked()
}

// SetSummary sets the summary, clamped to types.SummaryMaxLength characters, and
// returns the stored value along with any pending background write error.
func (c *Controller) SetSummary(value string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record.Data.Summary = types.ClampSummary(value)
	c.saver.Trigger()
	return c.record.Data.Summary, c.takeWriteErrLocked()
}

// SetTemplate switches the template. Legacy ids are migrated; unknown ids are rejected.
func (c *Controller) SetTemplate(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if _, ok := templates.Lookup(id); !ok {
		migrated, found := templates.Migrate(id)
		if !found {
			return "", &types.FieldError{Field: "templateId", Message: fmt.Sprintf("unknown template %q", id)}
		}
		id = migrated
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.record.TemplateID = id
	return id, c.saveLocked(ctx)
}

// AddEntry appends an empty entry to section and returns its id.
func (c *Controller) AddEntry(ctx context.Context, section Section) (string, error) {
	id := types.NewID()

	c.mu.Lock()
	defer c.mu.Unlock()
	d := &c.record.Data
	switch section {
	case SectionExperience:
		d.Experience = append(d.Experience, types.Experience{ID: id})
	case SectionProjects:
		d.Projects = append(d.Projects, types.Project{ID: id})
	case SectionEducation:
		d.Education = append(d.Education, types.Education{ID: id})
	case SectionCertifications:
		d.Certifications = append(d.Certifications, types.Certification{ID: id})
	default:
		return "", &NotFoundError{Section: string(section)}
	}
	return id, c.saveLocked(ctx)
}

// UpdateEntry sets one field of an entry.
func (c *Controller) UpdateEntry(section Section, id, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := &c.record.Data
	var err error
	switch section {
	case SectionExperience:
		err = updateEntry[types.Experience](d.Experience, section, id, field, value)
	case SectionProjects:
		err = updateEntry[types.Project](d.Projects, section, id, field, value)
	case SectionEducation:
		err = updateEntry[types.Education](d.Education, section, id, field, value)
	case SectionCertifications:
		err = updateEntry[types.Certification](d.Certifications, section, id, field, value)
	default:
		err = &NotFoundError{Section: string(section)}
	}
	if err != nil {
		return err
	}
	c.saver.Trigger()
	return c.takeWriteErrLocked()
}

// RemoveEntry deletes an entry from section.
func (c *Controller) RemoveEntry(ctx context.Context, section Section, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := &c.record.Data
	var err error
	switch section {
	case SectionExperience:
		d.Experience, err = removeEntry[types.Experience](d.Experience, section, id)
	case SectionProjects:
		d.Projects, err = removeEntry[types.Project](d.Projects, section, id)
	case SectionEducation:
		d.Education, err = removeEntry[types.Education](d.Education, section, id)
	case SectionCertifications:
		d.Certifications, err = removeEntry[types.Certification](d.Certifications, section, id)
	case SectionSkills:
		return c.removeSkillLocked(ctx, id)
	default:
		err = &NotFoundError{Section: string(section)}
	}
	if err != nil {
		return err
	}
	return c.saveLocked(ctx)
}

// AddSkill appends a skill. The trimmed name must not be empty.
func (c *Controller) AddSkill(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &types.FieldError{Field: "name", Message: "skill name is required"}
	}
	id := types.NewID()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.record.Data.Skills = append(c.record.Data.Skills, types.Skill{ID: id, Name: name})
	return id, c.saveLocked(ctx)
}

// RemoveSkill deletes a skill by id.
func (c *Controller) RemoveSkill(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeSkillLocked(ctx, id)
}

func (c *Controller) removeSkillLocked(ctx context.Context, id string) error {
	skills := c.record.Data.Skills
	i := slices.IndexFunc(skills, func(s types.Skill) bool { return s.ID == id })
	if i < 0 {
		return &NotFoundError{Section: string(SectionSkills), ID: id}
	}
	c.record.Data.Skills = slices.Delete(skills, i, i+1)
	return c.saveLocked(ctx)
}

// ClearAll resets the record to defaults and removes the stored copy.
func (c *Controller) ClearAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saver.Cancel()
	c.record = types.NewRecord()
	if err := storage.ClearRecord(ctx, c.store, c.key); err != nil {
		c.logger.Error("failed to clear saved data", "key", c.key, "error", err)
		return err
	}
	c.logger.Info("cleared all resume data")
	return nil
}

// Replace swaps in an imported record after validating it.
func (c *Controller) Replace(ctx context.Context, rec *types.ResumeRecord) error {
	next := rec.Clone()
	next.Normalize()
	if err := next.Validate(); err != nil {
		return fmt.Errorf("imported record is invalid: %w", err)
	}
	if _, ok := templates.Lookup(next.TemplateID); !ok {
		cfg, _ := templates.Resolve(next.TemplateID)
		next.TemplateID = cfg.ID
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.record = next
	return c.saveLocked(ctx)
}

// Preview renders the current record. On failure the returned HTML is the error panel.
func (c *Controller) Preview() (string, error) {
	rec := c.Snapshot()
	cfg, _ := templates.Resolve(rec.TemplateID)
	html, err := c.engine.RenderPreview(rec, cfg)
	if err != nil {
		c.logger.Error("preview render failed", "template", cfg.ID, "error", err)
	}
	return html, err
}

// PlainText renders the current record as ATS plain text.
func (c *Controller) PlainText() (string, error) {
	rec := c.Snapshot()
	cfg, _ := templates.Resolve(rec.TemplateID)
	fragment, err := c.engine.Render(rec, cfg)
	if err != nil {
		return "", err
	}
	return rendering.PlainText(fragment)
}

// Export runs the export pipeline on a snapshot of the current record.
func (c *Controller) Export(ctx context.Context, opts export.Options) (*export.Result, error) {
	if c.exporter == nil {
		return nil, errors.New("export is not configured")
	}
	return c.exporter.Export(ctx, c.Snapshot(), opts)
}

// PrintDocument returns the standalone document with a print trigger.
func (c *Controller) PrintDocument() (string, error) {
	rec := c.Snapshot()
	if c.exporter != nil {
		return c.exporter.PrintDocument(rec)
	}
	cfg, _ := templates.Resolve(rec.TemplateID)
	fragment, err := c.engine.Render(rec, cfg)
	if err != nil {
		return "", err
	}
	return c.engine.BuildDocument(fragment, cfg, rendering.DocumentOptions{Print: true})
}

// WriteError returns the last background write failure without clearing it.
func (c *Controller) WriteError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeErr
}

// Flush writes pending text edits now and returns the last background write error, if any.
func (c *Controller) Flush() error {
	c.saver.Flush()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.takeWriteErrLocked()
}

// Close flushes pending edits, stops the debounce and closes the store.
func (c *Controller) Close() error {
	flushErr := c.Flush()
	c.saver.Stop()
	if err := c.store.Close(); err != nil {
		return err
	}
	return flushErr
}

// saveLocked persists the record synchronously. Callers hold c.mu.
func (c *Controller) saveLocked(ctx context.Context) error {
	c.saver.Cancel()
	if err := storage.SaveRecord(ctx, c.store, c.key, c.record); err != nil {
		c.logger.Error("failed to save resume data", "key", c.key, "error", err)
		return err
	}
	c.writeErr = nil
	return nil
}

func (c *Controller) takeWriteErrLocked() error {
	err := c.writeErr
	c.writeErr = nil
	return err
}

func (c *Controller) saveDebounced() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := storage.SaveRecord(ctx, c.store, c.key, c.record); err != nil {
		c.logger.Error("failed to save resume data", "key", c.key, "error", err)
		c.writeErr = err
		return
	}
	c.writeErr = nil
}
