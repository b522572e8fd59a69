// Package config provides configuration loading and validation for roofserve.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (ROOFSERVE_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
// # Environment Variables
//
// All config keys map to environment variables with ROOFSERVE_ prefix:
//   - server.port → ROOFSERVE_SERVER_PORT
//   - storage.images_root → ROOFSERVE_STORAGE_IMAGES_ROOT
//   - storage.companies_file → ROOFSERVE_STORAGE_COMPANIES_FILE
//   - routes.prefix → ROOFSERVE_ROUTES_PREFIX
//
// # Defaults
//
//   - server.port: 3000
//   - storage.images_root: output/images
//   - storage.companies_file: output/all-companies.json
//   - routes.prefix: /RoofingMaterials
//   - log.level: info
//
// Timeouts under server are whole seconds. server.request_timeout bounds
// requests that do not stream a file; 0 disables it. File transfers are
// bounded by server.write_timeout.
package config
