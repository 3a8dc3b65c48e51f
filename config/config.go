package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int `yaml:"log_level"`

	// Device is the CD drive used by the rip flow.
	Device string `yaml:"device"`

	// Bitrate is the MP3 bitrate, in kbit/s, used by the split flow.
	Bitrate int `yaml:"bitrate"`

	Tools ToolsConfig `yaml:"tools"`
}

// ToolsConfig names the external binaries the archiver drives. Entries
// are resolved through PATH unless given as absolute paths.
type ToolsConfig struct {
	CDParanoia string `yaml:"cdparanoia"`
	Flac       string `yaml:"flac"`
	MkvMerge   string `yaml:"mkvmerge"`
	MkvExtract string `yaml:"mkvextract"`
	MkvInfo    string `yaml:"mkvinfo"`
	Lame       string `yaml:"lame"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config *Config

	// Unmarshal the YAML data into the struct
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	if config == nil {
		config = &Config{}
	}
	config.applyDefaults()

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Device == "" {
		c.Device = "/dev/cdrom"
	}
	if c.Bitrate == 0 {
		c.Bitrate = 192
	}
	if c.Tools.CDParanoia == "" {
		c.Tools.CDParanoia = "cdparanoia"
	}
	if c.Tools.Flac == "" {
		c.Tools.Flac = "flac"
	}
	if c.Tools.MkvMerge == "" {
		c.Tools.MkvMerge = "mkvmerge"
	}
	if c.Tools.MkvExtract == "" {
		c.Tools.MkvExtract = "mkvextract"
	}
	if c.Tools.MkvInfo == "" {
		c.Tools.MkvInfo = "mkvinfo"
	}
	if c.Tools.Lame == "" {
		c.Tools.Lame = "lame"
	}
}
