package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the results output.
	OutputMode string

	// ExportFormat represents a downloadable export of the matrix.
	ExportFormat string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string

	// NoticeLevel represents the severity of a transient user notice.
	NoticeLevel string
)

// Defaults applied when a matrix is created or extended.
const (
	DefaultWeight = 5.0  // weight of a criterion created without one
	DefaultRating = 5.0  // rating back-filled when a criterion is added
	MaxRating     = 10.0 // ceiling used for the maximum possible score
	StateVersion  = 1    // version stamped on locally stored state
)

// UnnamedOption is shown in results for an option with an empty name.
const UnnamedOption = "Unnamed"

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All export formats supported.
const (
	JSONExport ExportFormat = "json"
	CSVExport  ExportFormat = "csv"
	TextExport ExportFormat = "text"
)

// All persistence backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All notice levels supported.
const (
	InfoNotice  NoticeLevel = "info"
	WarnNotice  NoticeLevel = "warn"
	ErrorNotice NoticeLevel = "error"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidExportFormats lists all valid export formats.
var ValidExportFormats = map[ExportFormat]struct{}{
	JSONExport: {},
	CSVExport:  {},
	TextExport: {},
}

// ValidDatabaseBackends lists all valid persistence backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// DefaultOptionNames and DefaultCriterionNames seed a fresh matrix.
var (
	DefaultOptionNames    = []string{"Option 1", "Option 2"}
	DefaultCriterionNames = []string{"Criterion 1", "Criterion 2"}
)
