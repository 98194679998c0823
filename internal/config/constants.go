package config

// Application constants
const (
	AppName    = "empresas"
	AppVersion = "1.0.0"

	// Directory convention, relative to the working directory
	DefaultRawDir       = "data/raw"
	DefaultProcessedDir = "data/processed"
	DefaultReportsDir   = "reports"

	// Source selection
	CCMSourcePrefix = "LISTAGEM CADASTRO"
	RFBSourcePrefix = "CNPJ DE MOGI"
	CCMSheetName    = "FINAL"

	// Snapshot naming
	SnapshotExt         = ".parquet"
	ActivityCodeSuffix  = " - outros cnae"
	SummarySnapshotStem = "summary_"
	ReportFilePrefix    = "Excel_Analysis_"
	ReportSheetName     = "Report"
	ReportDateLayout    = "Jan-02-2006"
)
