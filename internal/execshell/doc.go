// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSCommandRunner for
// default process execution with the child's console streams wired straight
// to the parent, and defines the two failure kinds a step can produce:
// CommandExecutionError when a process cannot be started and
// CommandFailedError when it exits with a non-zero status.
package execshell
