// Package preflight provides readiness checks for the paths a batch run
// depends on.
//
// These checks run in two contexts:
//   - The batch runner calls RunAll before collecting logs. A failed
//     required check aborts the run before anything is written.
//   - The CLI "config validate" command prints every result so settings can
//     be verified without generating a script.
//
// The game and renderer executables usually live on the Windows machine
// that runs the script, so their checks are optional and only warn.
package preflight
