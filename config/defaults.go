package config

// Per-test configuration, read from <results>/<test>/<test>-conf.ini.
const (
	// Section holding the test description.
	TestSection = "Teste"

	// Nome: string
	// Friendly name used in chart labels and reports. Falls back to a
	// formatted version of the test directory name.
	TestNameKey = "Nome"

	// Suffix appended to the test directory name to find its INI file.
	TestConfSuffix = "-conf.ini"
)

// Summarizer settings, read from <results>/sumarizar.ini if present.
// Command line flags override anything set here.
const (
	// File name looked up in the results directory.
	SummarizerINI = "sumarizar.ini"

	// Section holding the summarizer settings.
	SummarizerSection = "sumarizar"

	// largura: float (inches)
	// Width of the bar and line charts.
	WidthKey = "largura"
	DefWidth = 8.0

	// altura: float (inches)
	// Height of the bar and line charts.
	HeightKey = "altura"
	DefHeight = 6.0

	// trabalhadores: int
	// Number of rounds loaded and rendered in parallel. 0 means one per
	// logical CPU.
	WorkersKey = "trabalhadores"
	DefWorkers = 0

	// ic: bool
	// Draw 95% confidence whiskers on bar charts.
	ShowCIKey = "ic"
	DefShowCI = false

	// media: bool
	// Draw a dashed line at the mean of the bars of each chart.
	ShowMeanKey = "media"
	DefShowMean = false
)
