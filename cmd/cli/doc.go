// Package cli constructs the devrun command-line interface, wiring the Cobra
// command hierarchy, the Viper configuration loader seeded with embedded
// defaults, and zap logging. The root command runs the configured command
// sequence; the run subcommand is an explicit alias for it.
package cli
