// Package config provides centralized configuration management for the
// registry data-preparation jobs.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (config.yaml, configs/config.yaml or $EMPRESAS_CONFIG)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern EMPRESAS_* for namespacing:
//
//	EMPRESAS_LOGGING_LEVEL=debug
//	EMPRESAS_PATHS_RAW_DIR=data/raw
//	EMPRESAS_SOURCES_CCM_PREFIX="LISTAGEM CADASTRO"
//	EMPRESAS_OBSERVABILITY_METRICS_FILE=/var/lib/node_exporter/empresas.prom
//
// # Path Management
//
// Paths resolves the data/raw, data/processed and reports convention against
// the working directory and names every snapshot and report file:
//
//	paths := config.ResolvePaths(wd, cfg.Paths)
//	snapshot := paths.GetSnapshotPath("LISTAGEM CADASTRO 2024")
//	report := paths.GetReportPath(time.Now(), ".xlsx")
package config
