// Package ui provides helpers for formatting human-readable console output.
//
// ProgressPrinter writes the short lines a developer sees around the child
// processes (where the run happens, which command starts next, and the final
// summary), while ConsoleCommandEventLogger mirrors command lifecycle events
// into a console-formatted zap logger.
package ui
