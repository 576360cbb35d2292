// Package driving defines the interfaces through which the outside
// world drives the core (primary/inbound ports).
//
// CLI and TUI adapters depend on these interfaces; core services
// implement them.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package, any driven port
package driving
