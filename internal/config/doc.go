// Package config loads cellscribe runtime settings from a TOML file and can
// watch the file for changes. A missing file is not an error; defaults apply.
package config
