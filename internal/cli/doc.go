// Package cli implements the command-line interface for nps-sites.
//
// The root command starts the interactive session: pick a state, browse its
// national sites, and look up places near one of them. The cache subcommands
// inspect and reset the on-disk response cache. Settings come from the YAML
// config file, the MAPQUEST_API_KEY environment variable and flags, in
// increasing order of precedence.
package cli
