// Package models defines the core domain models for the costs tracker.
//
// # Records
//
// Three record collections make up the persisted state:
//   - User: a registered account (collection "costs_users")
//   - AuthUser: the redacted projection kept as the single active session ("costs_session")
//   - Project: a budgeted project owned by one user, with its Services inline ("costs_projects")
//
// The JSON tags match the layout the browser version of the app wrote to
// local storage, so an exported profile can be loaded as-is.
//
// # Ownership
//
// Project.UserID is stamped from the caller at creation and re-asserted by the
// project store on every write. A Service never exists outside the Services
// slice of its parent Project.
//
// # Identifiers
//
// Record ids come from NewID: time-ordered UUIDs (timestamp prefix followed by
// random bits), never reused.
package models
