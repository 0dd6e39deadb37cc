// Package config provides configuration loading, merging, and validation
// facilities for the go-natours API and its admin CLI.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  0. Built-in defaults
//  1. A dotenv file (ENV_FILE or ./.env), loaded into the environment
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
//
// The main entry point is [GetStructuredConfig].
package config
