// Package sequence runs an ordered plan of external commands one at a time.
//
// A Plan binds every step to a single working directory resolved before the
// run begins. Runner executes the steps strictly in order, stops at the first
// step that fails to launch or exits non-zero, and reports the outcome as a
// Report whose State is either Completed or Failed. Definitions of the steps
// can be loaded from YAML, JSON, or TOML files with LoadDefinition.
package sequence
