// Package workspace resolves the directory every step of a run executes in.
//
// The directory is computed once per run from a configured path and an
// anchor: the enclosing Git repository root, the current directory, or the
// directory of the devrun binary. Nothing here changes the process working
// directory; callers thread the resolved path into each command instead.
package workspace
