package config

import (
	"os"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/bitshepherds/jtd-validate/internal/validator"
)

const (
	// DefaultConfigFile is picked up from the working directory when no
	// explicit path is given.
	DefaultConfigFile = ".jtdv.yml"

	// ConfigEnvVar overrides the config file location.
	ConfigEnvVar = "JTDV_CONFIG"

	configSchemaID = "https://jtd-validate.bitshepherds.dev/config.schema.json"
)

// configSchema is the JSON Schema every config document must satisfy
// before it is unmarshalled.
const configSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"maxDepth": {"type": "integer", "minimum": 0},
		"maxErrors": {"type": "integer", "minimum": 0},
		"output": {"enum": ["text", "json"]},
		"workers": {"type": "integer", "minimum": 0}
	}
}`

// Config holds run defaults. Command-line flags override these; zero
// values for the limits mean unbounded, and zero workers means one per
// CPU.
type Config struct {
	MaxDepth  int    `yaml:"maxDepth"`
	MaxErrors int    `yaml:"maxErrors"`
	Output    string `yaml:"output"`
	Workers   int    `yaml:"workers"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{Output: "text"}
}

// Locate picks the config file path: the explicit flag value, then the
// ConfigEnvVar override, then DefaultConfigFile if present in the working
// directory. An empty result means no config file applies.
func Locate(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(ConfigEnvVar); p != "" {
		return p
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// Load reads, schema-validates, and unmarshals the config file at path.
func Load(path string, compiler validator.Compiler) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingConfigError{Path: path}
		}
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &InvalidYAMLError{Path: path, Wrapped: err}
	}

	v, err := configValidator(compiler)
	if err != nil {
		return nil, err
	}
	if err := v.Validate(jsonify(doc)); err != nil {
		return nil, &InvalidConfigError{Path: path, Wrapped: err}
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &InvalidYAMLError{Path: path, Wrapped: err}
	}
	if cfg.Output == "" {
		cfg.Output = "text"
	}
	return cfg, nil
}

func configValidator(compiler validator.Compiler) (validator.Validator, error) {
	var schemaDoc any
	if err := json.Unmarshal([]byte(configSchema), &schemaDoc); err != nil {
		return nil, err
	}
	if err := compiler.AddSchema(configSchemaID, schemaDoc); err != nil {
		return nil, err
	}
	return compiler.Compile(configSchemaID)
}

// jsonify rewrites a yaml.Unmarshal value tree into the shapes
// json.Unmarshal would have produced, so the JSON Schema validator sees
// familiar types.
func jsonify(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = jsonify(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = jsonify(val)
		}
		return out
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	default:
		return v
	}
}
