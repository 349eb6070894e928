// Package config loads servicelog settings.
//
// Sources, lowest precedence first: `default` struct tags, the YAML file,
// a .env file, process environment variables, then command-line flags
// applied by the caller. Validate checks the merged result against an
// embedded CUE schema and reports every violation at once.
package config

// DefaultPath is the YAML file read when no --config flag is given.
const DefaultPath = "servicelog.yaml"

// DefaultEnvFile is the dotenv file merged below the process environment.
const DefaultEnvFile = ".env"

// Config holds all servicelog configuration.
type Config struct {
	Database   DatabaseConfig   `yaml:"database" json:"database"`
	UI         UIConfig         `yaml:"ui" json:"ui"`
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`
	Validation ValidationConfig `yaml:"validation" json:"validation"`
	Export     ExportConfig     `yaml:"export" json:"export"`
}

// DatabaseConfig names the SQLite file.
type DatabaseConfig struct {
	// Filename is the store's backing file (default: servicelog.db)
	Filename string `yaml:"filename" json:"filename" env:"SERVICELOG_DB" default:"servicelog.db"`
}

// UIConfig is carried for the calling shell and never interpreted here.
type UIConfig struct {
	Theme string `yaml:"theme" json:"theme" env:"SERVICELOG_THEME" default:"default"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: info)
	Level string `yaml:"level" json:"level" env:"LOG_LEVEL" default:"info"`

	// Format is text or json (default: text)
	Format string `yaml:"format" json:"format" env:"LOG_FORMAT" default:"text"`
}

// ValidationConfig tunes record validation.
type ValidationConfig struct {
	// StrictIncidentFields rejects non-incident records that carry
	// incident-only fields (default: false)
	StrictIncidentFields bool `yaml:"strict_incident_fields" json:"strict_incident_fields" env:"SERVICELOG_STRICT" default:"false"`
}

// ExportConfig holds spreadsheet export settings.
type ExportConfig struct {
	// Dir is where exported workbooks are written (default: .)
	Dir string `yaml:"dir" json:"dir" env:"SERVICELOG_EXPORT_DIR" default:"."`
}
