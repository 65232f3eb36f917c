// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The composer session lives here: it binds the editor, trigger scanner
// and suggestion controller to a host value and its callbacks.
package services
