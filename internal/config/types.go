package config

import "time"

// FileName is the main config file name inside the cache directory.
const FileName = "conf.yaml"

// IntervalKey is the key holding the automatic install interval. It is read
// at the top level and, for older layouts, under the "general" section.
const IntervalKey = "config_install_interval"

// Config is the cache's main configuration document.
// Only the keys this program needs are typed; everything else is kept as
// loaded so that merges and saves never drop unknown settings.
type Config struct {
	Values map[string]any
	path   string
}

// Path returns the file the config was loaded from and is saved to.
func (c *Config) Path() string {
	return c.path
}

// Get returns the value at a dotted key path ("general.retry").
func (c *Config) Get(key string) (any, bool) {
	return lookup(c.Values, key)
}

// InstallInterval returns the configured automatic install interval.
// The boolean is false when no interval is configured.
func (c *Config) InstallInterval() (time.Duration, bool, error) {
	raw, ok := c.Get(IntervalKey)
	if !ok || raw == nil {
		raw, ok = c.Get("general." + IntervalKey)
	}
	if !ok || raw == nil {
		return 0, false, nil
	}
	d, err := parseIntervalValue(raw)
	if err != nil {
		return 0, false, err
	}
	return d, true, nil
}
