/*

Package config has two parts:

config.go: A really simple key-value store for configs. Stores all
configs as string values internally, but has getters like GetInt,
GetFloat, etc. LoadINI fills a Config from one or more sections of an
INI file.

defaults.go: Key names and default values for the per-test INI files
and the optional summarizer settings file. Set all default values here
and write documentation for them.

*/
package config
