package output

import (
	"encoding/json"
	"io"
	"time"
)

// CurrentSchemaVersion is the schema version for all JSON outputs
const CurrentSchemaVersion = "1.0.0"

// Format selects how commands print results.
type Format string

// Output formats accepted by --format.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ConfigSummary is the JSON form of the show command.
type ConfigSummary struct {
	SchemaVersion string            `json:"schemaVersion"`
	File          string            `json:"file"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	ID            string            `json:"id,omitempty"`
	Version       string            `json:"version,omitempty"`
	Content       string            `json:"content,omitempty"`
	Orientation   string            `json:"orientation"`
	FullScreen    bool              `json:"fullscreen"`
	Environment   string            `json:"environment"`
	CocoonVersion string            `json:"cocoonVersion"`
	Author        *Author           `json:"author,omitempty"`
	Platforms     []Platform        `json:"platforms"`
	Engines       []Engine          `json:"engines"`
	Plugins       []Plugin          `json:"plugins"`
	Preferences   map[string]string `json:"preferences"`
	ElapsedMs     int64             `json:"elapsedMs"`
}

// Author is the widget author.
type Author struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// Platform is one platform container.
type Platform struct {
	Name        string            `json:"name"`
	Enabled     bool              `json:"enabled"`
	ID          string            `json:"id,omitempty"`
	Version     string            `json:"version,omitempty"`
	VersionCode string            `json:"versionCode,omitempty"`
	Preferences map[string]string `json:"preferences,omitempty"`
}

// Engine is one engine entry.
type Engine struct {
	Name string `json:"name"`
	Spec string `json:"spec"`
	Kind string `json:"kind"`
}

// Plugin is one plugin entry with its decoded variables.
type Plugin struct {
	Name      string            `json:"name"`
	Spec      string            `json:"spec"`
	Kind      string            `json:"kind"`
	Variables map[string]string `json:"variables,omitempty"`
}

// MigrationOutput reports what the migrate command rewrote.
type MigrationOutput struct {
	SchemaVersion string `json:"schemaVersion"`
	File          string `json:"file"`
	Platforms     int    `json:"platforms"`
	Engines       int    `json:"engines"`
	Plugins       int    `json:"plugins"`
	Variables     int    `json:"variables"`
	Repaired      int    `json:"repaired"`
	Saved         bool   `json:"saved"`
	ElapsedMs     int64  `json:"elapsedMs"`
}

// QueryOutput is the JSON form of the query command.
type QueryOutput struct {
	SchemaVersion string   `json:"schemaVersion"`
	Expression    string   `json:"expression"`
	Matches       []string `json:"matches"`
	ElapsedMs     int64    `json:"elapsedMs"`
}

// ValueOutput is the JSON form of a single get.
type ValueOutput struct {
	SchemaVersion string `json:"schemaVersion"`
	Field         string `json:"field"`
	Platform      string `json:"platform,omitempty"`
	Value         string `json:"value"`
	Found         bool   `json:"found"`
}

// WriteJSON writes a JSON object to the specified writer (typically stdout)
// When --format json is used, ALL JSON goes to stdout and ALL messages go to stderr
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// MeasureElapsed returns elapsed time in milliseconds since start
func MeasureElapsed(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
