// Package config holds the equalitychecker server's runtime settings:
// the values spf13/cobra flags populate at startup, plus the subset an
// optional YAML file can hot-swap without a restart.
package config

import (
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the server's full runtime configuration. Port and ConfigFile
// are fixed at startup; LogLevel and RequestTimeout may additionally be
// changed by a live config file reload (see Watcher) — never mid-request,
// since each request pins its own deadline the instant it arrives.
type Config struct {
	Port           int
	RequestTimeout time.Duration
	LogLevel       string
	ConfigFile     string
}

// Default mirrors the original service's defaults: port 5000, a five
// second per-request deadline, info-level logging.
func Default() Config {
	return Config{
		Port:           5000,
		RequestTimeout: 5 * time.Second,
		LogLevel:       "info",
	}
}

// fileConfig is the shape of the optional YAML config file. Only the
// fields safe to change without restarting the process are present here;
// Port is deliberately absent.
type fileConfig struct {
	LogLevel       string `yaml:"log_level"`
	RequestTimeout string `yaml:"request_timeout"`
}

// loadFile parses a YAML file at path into the mutable subset of Config.
func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// Live is a Config whose mutable fields (LogLevel, RequestTimeout) may be
// swapped at any time by a Watcher goroutine; reads and writes are
// synchronised so a handler mid-request never observes a torn update.
type Live struct {
	mu             sync.RWMutex
	port           int
	configFile     string
	logLevel       string
	requestTimeout time.Duration
}

// NewLive seeds a Live from an initial Config.
func NewLive(cfg Config) *Live {
	return &Live{
		port:           cfg.Port,
		configFile:     cfg.ConfigFile,
		logLevel:       cfg.LogLevel,
		requestTimeout: cfg.RequestTimeout,
	}
}

// Port never changes after startup.
func (l *Live) Port() int { return l.port }

// ConfigFile never changes after startup.
func (l *Live) ConfigFile() string { return l.configFile }

func (l *Live) LogLevel() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.logLevel
}

func (l *Live) RequestTimeout() time.Duration {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.requestTimeout
}

// applyFile overwrites the mutable fields from a parsed file, leaving any
// blank/zero field at its current value rather than clobbering it.
func (l *Live) applyFile(fc fileConfig) {
	timeout, err := time.ParseDuration(fc.RequestTimeout)

	l.mu.Lock()
	defer l.mu.Unlock()
	if fc.LogLevel != "" {
		l.logLevel = fc.LogLevel
	}
	if err == nil && timeout > 0 {
		l.requestTimeout = timeout
	}
}
