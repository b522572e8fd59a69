// Package cli provides the building blocks of the roofserve command line:
// output formatting for image listings, config file writing, and the
// interactive prompts used by "roofserve config init".
//
// # Output Formats
//
// NewFormatter returns a HumanFormatter (aligned table with a size summary) or
// a JSONFormatter (machine-readable, one document per command):
//
//	formatter := cli.NewFormatter(jsonOutput)
//	err := formatter.FormatImages(os.Stdout, entries)
//
// # Config Files
//
// WriteConfigFile renders a config.Config as YAML in the layout config.Load
// reads back, and MarshalConfig does the same for printing.
package cli
