package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of tabular output.
	OutputMode string

	// AnalysisMode represents which branch of the filter ran.
	AnalysisMode string

	// DatabaseBackend represents the database backend for the run store.
	DatabaseBackend string

	// PlotFormat represents the image format for diagnostic charts.
	PlotFormat string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All analysis modes supported.
const (
	FilterMode  AnalysisMode = "filter"  // cutoff provided
	ExploreMode AnalysisMode = "explore" // no cutoff
)

// All run-store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All plot formats supported.
const (
	PNGPlot PlotFormat = "png" // default
	SVGPlot PlotFormat = "svg"
	PDFPlot PlotFormat = "pdf"
)

// ThresholdGrid is the fixed ordered sequence of candidate completeness
// levels used to build the sweep tables. It is a constant configuration
// table, never derived at runtime.
var ThresholdGrid = []float64{0.3, 0.5, 0.6, 0.65, 0.7, 0.75, 0.8, 0.85, 0.9, 0.95, 1.0}

// FloatTol absorbs accumulated float error in completeness comparisons so
// that a site whose missingness equals 1-level exactly is retained.
const FloatTol = 1e-9

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid run-store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidPlotFormats lists all valid plot formats.
var ValidPlotFormats = map[PlotFormat]struct{}{
	PNGPlot: {},
	SVGPlot: {},
	PDFPlot: {},
}
