package config

import (
	"strconv"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/vaughan0/go-ini"
)

// The Config holds a map of config values by their keys/names. They
// are all stored as strings and parsed on read time only. Currently
// there are four built in types:
//
// `string`: (GetString) Returns the config value as a string. This
// can never fail.
//
// `int`: (GetInt) Uses strconv.Atoi to parse the value and return an
// int.
//
// `float`: (GetFloat) Uses strconv.ParseFloat to parse the value.
// Both "8.5" and "8,5" are accepted, since the experiment INI files
// are often written with a decimal comma.
//
// `bool`: (GetBool) Uses strconv.ParseBool to read config vars like
// true/t/1 or false/f/0
//
// When a value COULD NOT BE PARSED at runtime, Config emits a warning
// (with glog) and returns the given DEFAULT VALUE.
//
// Keep this Config-system simple. If you need another type than the
// ones that Config gives you, use GetString and parse it where you use
// it.
type Config struct {
	values map[string]string
}

// Returns a new empty Config.
func NewConfig() *Config {
	return &Config{
		values: make(map[string]string),
	}
}

func newConfigFromValues(values map[string]string) *Config {
	return &Config{
		values: values,
	}
}

// LoadINI reads an INI file and merges the given sections into a new
// Config. Later sections override keys from earlier ones. A missing
// section contributes nothing.
func LoadINI(filename string, sections ...string) (*Config, error) {
	file, err := ini.LoadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "config: loading %s", filename)
	}

	values := make(map[string]string)
	for _, section := range sections {
		for k, v := range file.Section(section) {
			values[k] = v
		}
	}

	return newConfigFromValues(values), nil
}

// Sets a config to a value. All values can only be set as strings.
func (c *Config) Set(key, value string) {
	c.values[key] = value
}

// Has reports whether key was set, regardless of its value.
func (c *Config) Has(key string) bool {
	_, found := c.values[key]
	return found
}

// Gets a value as a string. This one will never emit an warning
// because all values per definition is available as strings.
func (c *Config) GetString(key, defaultVal string) string {
	cfgValue, found := c.values[key]

	if !found {
		return defaultVal
	}

	return cfgValue
}

// Returns the config as an int. If the config is not set, the
// supplied default value is returned. If the config is not possible
// to parse as an int (strconv.Atoi), the default value is returned
// and an warning message is written to glog.
func (c *Config) GetInt(key string, defaultVal int) int {
	cfgValue, found := c.values[key]

	if !found {
		return defaultVal
	}

	i, err := strconv.Atoi(cfgValue)

	if err != nil {
		glog.Warningf("Could not parse config \"%s\": \"%s\" as int (see strconv.Atoi). Using default value: \"%d\".",
			key, cfgValue, defaultVal)
		return defaultVal
	}

	return i
}

// Returns the config as a float64. If the config is not set, the
// supplied default value is returned. If the config is not possible
// to parse as a float, the default value is returned and an warning
// message is written to glog.
func (c *Config) GetFloat(key string, defaultVal float64) float64 {
	cfgValue, found := c.values[key]

	if !found {
		return defaultVal
	}

	f, err := strconv.ParseFloat(commaToDot(cfgValue), 64)

	if err != nil {
		glog.Warningf("Could not parse config \"%s\": \"%s\" as float (see strconv.ParseFloat). Using default value: \"%g\".",
			key, cfgValue, defaultVal)
		return defaultVal
	}

	return f
}

// Returns the config as an bool. If the config is not set, the
// supplied default value is returned. If the config is not possible
// to parse as a bool (strconv.ParseBool), the default value is
// returned and an warning message is written to glog.
func (c *Config) GetBool(key string, defaultVal bool) bool {
	cfgValue, found := c.values[key]

	if !found {
		return defaultVal
	}

	b, err := strconv.ParseBool(cfgValue)

	if err != nil {
		glog.Warningf("Could not parse config \"%s\": \"%s\" as boolean (see strconv.ParseBool). Using default value: \"%t\".",
			key, cfgValue, defaultVal)
		return defaultVal
	}

	return b
}

// Clones the config with all the values.
func (c *Config) CloneToKeyValueMap() map[string]string {
	clonedMap := make(map[string]string, len(c.values))
	for k, v := range c.values {
		clonedMap[k] = v
	}

	return clonedMap
}

func commaToDot(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] == ',' {
			b[i] = '.'
		}
	}
	return string(b)
}
