// Package config assembles the server configuration from three sources
// merged in order of precedence: command-line flags, environment variables,
// and an optional JSON file referenced by -c/-config or the CONFIG env var.
//
// A partial [StructuredConfig] is produced per source; dario.cat/mergo
// merges them so that the first source to set a field wins. Defaults and a
// validation pass are applied on the merged result.
package config
