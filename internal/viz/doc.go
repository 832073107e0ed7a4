// Package viz provides terminal-based visualization for lattice
// simulations.
//
// The package implements an interactive TUI using the Bubble Tea
// framework:
//
//   - [Live]: interactive live view of a running simulation
//   - [RunBrowser]: table view over saved runs
//   - [Canvas]: Braille-based pixel canvas used for exports
//   - Theme selection with built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Re-randomize the lattice
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	↑/↓   - Raise/lower temperature
//	←/→   - Adjust external field
//	?     - Toggle help
//
// # Recording
//
// The live view records sessions as GIF animations with the G key.
// Recordings are saved to the current directory.
package viz
