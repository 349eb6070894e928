package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// LoadOption configures Load.
type LoadOption func(*loader)

type loader struct {
	envFile  string
	required bool
	lookup   func(string) (string, bool)
}

// WithEnvFile reads dotenv values from path instead of DefaultEnvFile.
// An empty path disables dotenv loading.
func WithEnvFile(path string) LoadOption {
	return func(l *loader) { l.envFile = path }
}

// Required makes a missing YAML file an error.
func Required() LoadOption {
	return func(l *loader) { l.required = true }
}

// WithLookup replaces the process environment lookup (for testing).
func WithLookup(fn func(string) (string, bool)) LoadOption {
	return func(l *loader) { l.lookup = fn }
}

// Load builds a Config from defaults, the YAML file at path, the dotenv
// file and the environment. It does not validate; call Validate after
// applying flag overrides.
func Load(path string, opts ...LoadOption) (*Config, error) {
	l := &loader{envFile: DefaultEnvFile, lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(l)
	}

	cfg := &Config{}
	if err := applyDefaults(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}

	if err := l.readFile(path, cfg); err != nil {
		return nil, err
	}

	dotenv, err := l.readEnvFile()
	if err != nil {
		return nil, err
	}

	lookup := func(key string) string {
		if v, ok := l.lookup(key); ok && v != "" {
			return v
		}
		return dotenv[key]
	}
	if err := applyEnv(reflect.ValueOf(cfg).Elem(), lookup); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}

	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)
	return cfg, nil
}

func (l *loader) readFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !l.required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

func (l *loader) readEnvFile() (map[string]string, error) {
	if l.envFile == "" {
		return nil, nil
	}

	values, err := godotenv.Read(l.envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("env file %s: %w", l.envFile, err)
	}
	return values, nil
}

// applyDefaults sets every field from its `default` tag.
func applyDefaults(v reflect.Value) error {
	return walk(v, func(field reflect.StructField, fv reflect.Value) error {
		def, ok := field.Tag.Lookup("default")
		if !ok {
			return nil
		}
		if err := setField(fv, def); err != nil {
			return fmt.Errorf("default for %s=%q: %w", field.Name, def, err)
		}
		return nil
	})
}

// applyEnv overrides fields whose `env` variable is set and non-empty.
func applyEnv(v reflect.Value, lookup func(string) string) error {
	return walk(v, func(field reflect.StructField, fv reflect.Value) error {
		name := field.Tag.Get("env")
		if name == "" {
			return nil
		}
		value := lookup(name)
		if value == "" {
			return nil
		}
		if err := setField(fv, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", name, value, err)
		}
		return nil
	})
}

// walk calls fn for every settable leaf field, recursing into structs.
func walk(v reflect.Value, fn func(reflect.StructField, reflect.Value) error) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}
		if field.Type.Kind() == reflect.Struct {
			if err := walk(fv, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(field, fv); err != nil {
			return err
		}
	}
	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	return nil
}

// Validate checks the configuration against the embedded schema.
// Returns an error describing all violations.
func (c *Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	value := def.Unify(ctx.Encode(c))

	err := value.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var msgs []string
	for _, e := range cueerrors.Errors(err) {
		msgs = append(msgs, e.Error())
	}
	if len(msgs) == 0 {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("config validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
