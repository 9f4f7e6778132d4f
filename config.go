package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"gopkg.in/yaml.v3"
)

// defaultBufferSizeConst is the buffer size spec.md §4.1 names when no
// better platform-specific size is available.
const defaultBufferSizeConst = 32 * 1024

// config holds every setting the CLI can take either from a YAML file or
// from flags. Flags always win: loadConfig fills in the file's values first,
// then main.go's flag package overwrites any flag the user actually passed.
type config struct {
	LogLevel   string `yaml:"log_level"`
	Color      bool   `yaml:"color"`
	BufferSize int    `yaml:"buffer_size"`
	Verify     bool   `yaml:"verify"`
	Codec      string `yaml:"codec"`
}

// defaultConfig returns the configuration the tool runs with when neither a
// config file nor any flag is given (spec.md §6: no environment variables,
// no persisted state).
func defaultConfig() config {
	return config{
		LogLevel:   "info",
		Color:      true,
		BufferSize: defaultBufferSize(),
		Verify:     false,
		Codec:      "fgk",
	}
}

// loadConfig reads and parses a YAML config file at path, starting from
// defaultConfig so any field the file omits keeps its default value.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultBufferSize picks the default for config.BufferSize: the platform
// page size on unix targets, falling back to the 32 KiB constant the spec
// names when that syscall isn't available. The value is only stored in the
// config; the CLI does not pass it to the fgk bit I/O layer, which takes no
// buffer size.
func defaultBufferSize() int {
	if n := unix.Getpagesize(); n > 0 {
		return n
	}
	return defaultBufferSizeConst
}
