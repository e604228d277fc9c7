// Package utils exposes reusable helpers consumed by the devrun commands.
//
// It houses the Viper-backed ConfigurationLoader, the zap LoggerFactory, the
// FlushingWriter used for progress output, and the CommandContextAccessor that
// carries the loaded configuration file path through cobra contexts.
package utils
