// Package commands provides the command-line interface for the splinch tool.
//
// A single root command either splits a file into an XOR pair, optionally verifying the
// parts and securely deleting the source, or combines a pair back into the original.
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
