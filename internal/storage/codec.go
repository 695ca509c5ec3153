// Package storage persists the resume record under a namespaced key in a file or PostgreSQL store.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/jonathan/resume-builder/internal/types"
)

// now is replaced in tests.
var now = time.Now

// envelope accepts both the current and the legacy persisted layouts.
type envelope struct {
	SchemaVersion *int              `json:"schemaVersion,omitempty"`
	TemplateID    *string           `json:"templateId,omitempty"`
	Version       *int              `json:"version,omitempty"`
	Template      *string           `json:"template,omitempty"`
	Data          *types.ResumeData `json:"data,omitempty"`
}

// Decoded is a record loaded from storage along with how its template id was resolved.
type Decoded struct {
	Record *types.ResumeRecord
	// StoredTemplateID is the template id as persisted, before migration.
	StoredTemplateID string
	// TemplateFallback is set when StoredTemplateID was not recognized and the default was used.
	TemplateFallback bool
	// AssignedIDs counts entries that were missing an id (or duplicated one) and got a synthetic id.
	AssignedIDs int
}

// Encode serializes a record in the current envelope layout.
func Encode(rec *types.ResumeRecord) ([]byte, error) {
	c := rec.Clone()
	c.SchemaVersion = types.SchemaVersion
	c.Normalize()
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}
	return data, nil
}

// Decode parses a stored value, validates it against the record schema, checks the version
// and applies the defensive merge: missing members default to empty, entries without ids get
// synthetic ones, and legacy template ids are migrated. Any rejection is a *CorruptError.
func Decode(raw []byte) (*Decoded, error) {
	if !json.Valid(raw) {
		return nil, &CorruptError{Key: RecordKey, Message: "stored value is not valid JSON"}
	}

	if err := schemas.ValidateRecord(raw); err != nil {
		return nil, &CorruptError{Key: RecordKey, Message: "stored value has the wrong shape", Cause: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &CorruptError{Key: RecordKey, Message: "failed to decode stored value", Cause: err}
	}

	version := 0
	switch {
	case env.SchemaVersion != nil:
		version = *env.SchemaVersion
	case env.Version != nil:
		version = *env.Version
	}
	if version != types.SchemaVersion {
		return nil, &CorruptError{
			Key:     RecordKey,
			Message: fmt.Sprintf("schema version mismatch: stored %d, expected %d", version, types.SchemaVersion),
		}
	}

	rec := types.NewRecord()
	if env.Data != nil {
		rec.Data = *env.Data
	}
	rec.Normalize()
	if utf8.RuneCountInString(rec.Data.Summary) > types.SummaryMaxLength {
		rec.Data.Summary = types.ClampSummary(rec.Data.Summary)
	}

	out := &Decoded{Record: rec}

	stored := ""
	if env.TemplateID != nil {
		stored = *env.TemplateID
	} else if env.Template != nil {
		stored = *env.Template
	}
	out.StoredTemplateID = stored
	if strings.TrimSpace(stored) != "" {
		cfg, ok := templates.Resolve(stored)
		rec.TemplateID = cfg.ID
		out.TemplateFallback = !ok
	}

	out.AssignedIDs = assignMissingIDs(rec, now().UnixMilli())
	return out, nil
}

// assignMissingIDs gives every entry without an id, or with an id already used earlier in
// the same list, an id of the form loaded-<list>-<index>-<unixmilli>.
func assignMissingIDs(rec *types.ResumeRecord, stamp int64) int {
	assigned := 0
	fix := func(list string, n int, get func(i int) *string) {
		seen := make(map[string]bool, n)
		for i := 0; i < n; i++ {
			id := get(i)
			if strings.TrimSpace(*id) == "" || seen[*id] {
				*id = fmt.Sprintf("loaded-%s-%d-%d", list, i, stamp)
				assigned++
			}
			seen[*id] = true
		}
	}

	d := &rec.Data
	fix("experience", len(d.Experience), func(i int) *string { return &d.Experience[i].ID })
	fix("projects", len(d.Projects), func(i int) *string { return &d.Projects[i].ID })
	fix("education", len(d.Education), func(i int) *string { return &d.Education[i].ID })
	fix("certifications", len(d.Certifications), func(i int) *string { return &d.Certifications[i].ID })
	fix("skills", len(d.Skills), func(i int) *string { return &d.Skills[i].ID })
	return assigned
}

// DecodeYAML converts a YAML document to JSON and decodes it like a stored value.
func DecodeYAML(raw []byte) (*Decoded, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, &CorruptError{Key: RecordKey, Message: "document is not valid YAML", Cause: err}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, &CorruptError{Key: RecordKey, Message: "document cannot be represented as JSON", Cause: err}
	}
	return Decode(data)
}

// EncodeYAML serializes a record as YAML in the current envelope layout.
func EncodeYAML(rec *types.ResumeRecord) ([]byte, error) {
	c := rec.Clone()
	c.SchemaVersion = types.SchemaVersion
	c.Normalize()
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record as YAML: %w", err)
	}
	return data, nil
}

// IsCorrupt reports whether err is a *CorruptError.
func IsCorrupt(err error) bool {
	var corrupt *CorruptError
	return errors.As(err, &corrupt)
}
