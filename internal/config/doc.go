// Package config provides configuration management for tagpatch.
//
// This package handles:
//   - Loading and saving settings from TOML files
//   - Default configuration values, embedded from config.example.toml
//   - Conversion to http.Options and log levels for other packages
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Looks lyrics up on https://lrclib.net/api
//	// 10 second bound per lookup
//	// Info level logging
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // Malformed file or out of range value
//	}
//
// A missing file is not an error; Load returns the defaults. Keys absent
// from the file keep their default value and unknown keys are rejected.
//
// # Creating a Config File
//
//	err := config.CreateFile(config.DefaultPath())
//
// writes the commented example so users have something to edit.
package config
