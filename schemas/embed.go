// Package schemas embeds the JSON Schema documents shipped with the module.
package schemas

import _ "embed"

// ResumeRecord is the schema for the persisted resume envelope.
//
//go:embed resume_record.schema.json
var ResumeRecord string
