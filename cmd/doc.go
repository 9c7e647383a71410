// Package cmd implements the command-line interface for calplan.
//
// This package provides the following commands:
//   - create: Create a calendar event from a natural-language command
//   - delete: Delete a calendar event from a natural-language command
//   - list: List calendar events for a period given in natural language
//   - advice: Ask the model for time-management advice over the next week
//   - serve: Start the web front end
//   - version: Display version information
//
// Each one-shot command constructs its own clients, performs at most one
// interpreter call followed by at most one gateway call, and exits.
package cmd
