package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/tools"
	"github.com/arthur-debert/scirnap/pkg/types"
)

// EnvPrefix prefixes every environment variable read by Load. Nested keys
// are separated by a double underscore: SCIRNAP_TOOLS__HISAT2__INDEX sets
// tools.hisat2.index.
const EnvPrefix = "SCIRNAP_"

// FileNames are searched in order when no config file is given
var FileNames = []string{"scirnap.toml", "scirnap.yaml", "scirnap.yml"}

// Config is the merged configuration
type Config struct {
	DataDir   string                `koanf:"data_dir" toml:"data_dir"`
	OutputDir string                `koanf:"output_dir" toml:"output_dir"`
	Threads   int                   `koanf:"threads" toml:"threads"`
	DryRun    bool                  `koanf:"dry_run" toml:"dry_run"`
	LogFile   string                `koanf:"log_file" toml:"log_file"`
	Tools     map[string]ToolConfig `koanf:"tools" toml:"tools"`
}

// ToolConfig holds the settings of one wrapped program
type ToolConfig struct {
	Name     string         `koanf:"name" toml:"name,omitempty"`
	Program  string         `koanf:"program" toml:"program"`
	Params   string         `koanf:"params" toml:"params,omitempty"`
	Suffix   string         `koanf:"suffix" toml:"suffix"`
	Mode     types.ReadMode `koanf:"mode" toml:"mode,omitempty"`
	GTF      string         `koanf:"gtf" toml:"gtf,omitempty"`
	CtabDir  string         `koanf:"ctab_dir" toml:"ctab_dir,omitempty"`
	Index    string         `koanf:"index" toml:"index,omitempty"`
	Samtools string         `koanf:"samtools" toml:"samtools,omitempty"`
	MultiQC  string         `koanf:"multiqc" toml:"multiqc,omitempty"`
	QCMetric string         `koanf:"qc_metric" toml:"qc_metric,omitempty"`
	QCFlag   string         `koanf:"qc_flag" toml:"qc_flag,omitempty"`
	// RenameMap is a YAML file of first file -> merged name
	RenameMap string `koanf:"rename_map" toml:"rename_map,omitempty"`
	// Barcodes is a barcode sheet used to group files before merging
	Barcodes string `koanf:"barcodes" toml:"barcodes,omitempty"`
}

// LoadOptions selects the sources Load reads
type LoadOptions struct {
	// File is an explicit config file; it must exist
	File string
	// Dir is searched for FileNames when File is empty; defaults to "."
	Dir string
	// Overrides are flat koanf keys (e.g. "tools.hisat2.index") set from
	// the command line. They win over every other source.
	Overrides map[string]interface{}
}

// Load merges the embedded defaults, the config file, the environment and
// the overrides, in that order.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Config file
	path, err := findConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load flags")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				trimSpaceHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func findConfigFile(opts LoadOptions) (string, error) {
	if opts.File != "" {
		if _, err := os.Stat(opts.File); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", opts.File).
				WithDetail("path", opts.File)
		}
		return opts.File, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	}
	return toml.Parser()
}

// Tool returns the settings of one tool, empty when it is not configured
func (c *Config) Tool(name string) ToolConfig {
	return c.Tools[name]
}

// Pipeline resolves the pipeline configuration and builder options of a
// tool. Unset values fall back to the tool's registered defaults and the
// output directory falls back to the data directory.
func (c *Config) Pipeline(tool string) (types.PipelineConfig, tools.Options, error) {
	spec, err := tools.Lookup(tool)
	if err != nil {
		return types.PipelineConfig{}, tools.Options{}, err
	}
	if c.DataDir == "" {
		return types.PipelineConfig{}, tools.Options{},
			errors.New(errors.ErrConfigInvalid, "a data directory is required (--data-dir)")
	}
	if c.Threads < 0 {
		return types.PipelineConfig{}, tools.Options{},
			errors.Newf(errors.ErrConfigInvalid, "threads must not be negative, got %d", c.Threads)
	}

	tc := c.Tool(tool)
	pc := types.PipelineConfig{
		Name:      firstNonEmpty(tc.Name, spec.Label),
		DataDir:   c.DataDir,
		OutputDir: firstNonEmpty(c.OutputDir, c.DataDir),
		Program:   firstNonEmpty(tc.Program, tool),
		Params:    tc.Params,
		Suffix:    firstNonEmpty(tc.Suffix, spec.DefaultSuffix),
		DryRun:    c.DryRun,
		Threads:   c.Threads,
		LogFile:   c.LogFile,
	}
	opts := tools.Options{
		Mode:     string(tc.Mode),
		GTF:      tc.GTF,
		CtabDir:  tc.CtabDir,
		Index:    tc.Index,
		Samtools: tc.Samtools,
		MultiQC:  tc.MultiQC,
	}
	return pc, opts, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
