// Package cli provides the interactive SkillSwap command-line client.
//
// It wires configuration, the local session store, the API services and a
// REPL. The client moves between views (home, login, register, profile,
// browse, dashboard); each command either switches the view or acts on
// what the current view shows.
//
// Key features:
//   - Register, login by email, logout
//   - Browse public profiles by skill and location
//   - Compose and send swap requests
//   - Accept, reject, withdraw and rate requests from the dashboard
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher and runREPL for details.
package cli
