// Package lintgate holds module-level metadata shared by the CLI and
// the MCP server.
package lintgate

// Version is the lintgate release version.
const Version = "0.3.0"
