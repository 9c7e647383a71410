// Package planner interprets free-text calendar commands into structured,
// validated intents.
//
// The hard part — language understanding — is delegated to an external model
// (see the oracle package); this package owns the contract for what a valid
// intent looks like, a deterministic fast path for "today's events" queries,
// and the validation of model output at the boundary. No raw model payload
// leaves this package.
package planner
