// Package oracle wraps the OpenAI-compatible language model the planner
// delegates language understanding to.
//
// The package owns the fixed catalog of callable operation schemas
// (create_event, delete_event, get_events) and the mapping of the model's
// response into a FunctionCall. Raw model payloads never leave this package
// in any other form.
package oracle
