// Package config provides configuration management for facesconfig.
//
// Configuration is loaded from YAML files with environment variable
// overrides:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("facesconfig.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention FACESCONFIG_SECTION_FIELD:
//
//   - FACESCONFIG_DOCUMENTS_PATHS overrides documents.paths (comma-separated)
//   - FACESCONFIG_PARSER_PARALLELISM overrides parser.parallelism
//   - FACESCONFIG_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example
//
//	documents:
//	  paths:
//	    - META-INF/faces-config.xml
//	    - WEB-INF/
//	  schema_dir: schemas/
//	parser:
//	  parallelism: 4
//	watch:
//	  debounce: 500ms
//	history:
//	  enabled: true
//	  backend: sqlite
//	  retention:
//	    days: 14
//	telemetry:
//	  logging:
//	    level: debug
//	    format: json
package config
