package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for doxy2man. Every value can also be
// set from the command line; explicit flags win over the file.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Page    PageConfig    `yaml:"page"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig locates the doxygen XML and the original headers.
type InputConfig struct {
	XMLDir       string `yaml:"xml_dir"`
	HeaderSrcDir string `yaml:"header_src_dir"`
	HeaderFile   string `yaml:"header_file"`   // override; default taken from the XML
	HeaderPrefix string `yaml:"header_prefix"` // include prefix, e.g. "qb/"
}

// OutputConfig controls where and how pages are written.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	Section      int    `yaml:"section"`
	PrintParams  bool   `yaml:"print_params"`
	PrintGeneral bool   `yaml:"print_general"`
}

// PageConfig holds the text stamped onto every page.
type PageConfig struct {
	Package            string `yaml:"package"`
	Header             string `yaml:"header"`
	Company            string `yaml:"company"`
	StartYear          int    `yaml:"start_year"`
	Year               int    `yaml:"year"` // 0 means current year
	Date               string `yaml:"date"` // empty means today
	UseHeaderCopyright bool   `yaml:"use_header_copyright"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			XMLDir:       "./xml/",
			HeaderSrcDir: "./",
		},
		Output: OutputConfig{
			Dir:     "./",
			Section: 3,
		},
		Page: PageConfig{
			Package:   "Package",
			Header:    "Programmer's Manual",
			StartYear: 2010,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for
// doxy2man.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "doxy2man.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
