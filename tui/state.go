package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"threatscope/cache"
	"threatscope/models"
	"threatscope/render"
	"threatscope/utils"
)

// Submit control labels
const (
	SubmitLabel    = "Analyze Threat"
	AnalyzingLabel = "Analyzing..."
)

// Analyzer classifies one request. *client.Client satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error)
}

// ResultState is what the result section currently shows
type ResultState int

const (
	ResultHidden ResultState = iota
	ResultShown
	ResultError
)

// Model represents the main TUI model
type Model struct {
	width  int
	height int

	// Pane layout
	leftPaneWidth  int
	rightPaneWidth int
	showRightPane  bool

	cfg      *models.Config
	analyzer Analyzer
	history  *cache.History
	writer   *utils.YAMLWriter

	// Mode selector
	mode  models.Mode
	input textarea.Model

	// Submit control
	analyzing   bool
	buttonLabel string
	requestID   int
	cancel      context.CancelFunc
	spinner     spinner.Model

	// Result section
	resultState ResultState
	result      *models.AnalysisResult
	errMsg      string
	counter     *render.Counter
	animGen     int
	ring        progress.Model
	ringOffset  float64
	severity    render.Severity
	seenBefore  bool
	elapsed     time.Duration

	viewport       viewport.Model
	scrollToResult bool

	statusLine string
	logPath    string
}

// Options wires the model's collaborators
type Options struct {
	Config   *models.Config
	Analyzer Analyzer
	History  *cache.History
	// InitialText pre-fills the input, e.g. from --file.
	InitialText string
	// Mode overrides the configured default mode.
	Mode *models.Mode
}

// NewModel creates a new TUI model
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = models.DefaultConfig()
	}
	history := opts.History
	if history == nil {
		history = cache.NewHistory(cfg.History.TTL, cfg.History.MaxEntries)
	}

	input := textarea.New()
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(6)
	input.SetValue(opts.InitialText)
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = highlightStyle

	m := Model{
		cfg:         cfg,
		analyzer:    opts.Analyzer,
		history:     history,
		writer:      utils.NewYAMLWriter(cfg.Output.Dir),
		input:       input,
		buttonLabel: SubmitLabel,
		spinner:     spin,
		ring:        progress.New(progress.WithSolidFill(string(successColor)), progress.WithoutPercentage()),
		viewport:    viewport.New(0, 0),
	}

	mode := cfg.UI.DefaultMode
	if opts.Mode != nil {
		mode = *opts.Mode
	}
	m.setMode(mode)

	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Mode returns the current input mode.
func (m Model) Mode() models.Mode {
	return m.mode
}
