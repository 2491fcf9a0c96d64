package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	GroupingConfig struct {
		Blocks   GroupingMode `yaml:"blocks" validate:"gte=0"`
		Phrases  GroupingMode `yaml:"phrases" validate:"gte=0"`
		Language string       `yaml:"language" validate:"required,bcp47_language_tag"`
	}

	TracerConfig struct {
		BlockSelector   string         `yaml:"block_selector"`
		PhraseSelector  string         `yaml:"phrase_selector"`
		Fuzziness       int            `yaml:"alignment_fuzziness" validate:"gte=0"`
		TimeOffset      float64        `yaml:"time_offset"`
		AutoScroll      ScrollMode     `yaml:"auto_scroll" validate:"oneof=0 1 2 3"`
		Clickable       bool           `yaml:"clickable"`
		MediaRetryDelay time.Duration  `yaml:"media_retry_delay" validate:"gte=0"`
		Grouping        GroupingConfig `yaml:"grouping"`
	}

	OutputConfig struct {
		Indent           int    `yaml:"indent" validate:"gte=0,lte=8"`
		FileNameTemplate string `yaml:"file_name_template"`
		FileNameSlug     bool   `yaml:"file_name_slug"`
		KeepSegmentation bool   `yaml:"keep_segmentation"`
		XMLDeclaration   bool   `yaml:"xml_declaration"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Tracer    TracerConfig   `yaml:"tracer"`
		Output    OutputConfig   `yaml:"output"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

// NOTE: must match yaml field name above
const FileNameTemplateFieldName = "file_name_template"

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(FileNameTemplateFieldName),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration is not valid: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
