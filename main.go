// ThreatScope - Email & URL threat analysis client
// Submits text to a phishing classifier and shows its verdict.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"threatscope/client"
	"threatscope/mockserver"
	"threatscope/models"
	"threatscope/source"
	"threatscope/tui"
	"threatscope/ui"
	"threatscope/utils"
)

var (
	version = "1.0.0"

	// Global flags
	configFile string
	endpoint   string
	timeout    time.Duration
	modeFlag   string
	inputFile  string

	// check flags
	checkText  string
	outputFile string

	// mock-server flags
	listenAddr string
	untrained  bool
	latency    time.Duration
	accessLog  bool
)

// exitMalicious is returned by check when the classifier flags the input.
const exitMalicious = 2

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Errors are returned to main, which
// prints them once.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "threatscope",
		Short: "ThreatScope - Email & URL threat analysis",
		Long: `ThreatScope submits an email body or a URL to a phishing
classifier service and shows the security score, threat level and
malicious/safe classification it returns.

Run without a subcommand to open the interactive terminal UI.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "threatscope.yml", "Path to config file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "Classifier base URL (overrides config)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout, e.g. 10s (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&modeFlag, "mode", "m", "", "Input mode: email or url")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "Load input from a file (.eml, .html or plain text)")

	checkCmd := &cobra.Command{
		Use:   "check [text]",
		Short: "Analyze one input and print the verdict",
		Long: `Analyze one input without the terminal UI.

Exit status is 0 for a safe verdict, 2 for a malicious one and 1 on error.`,
		SilenceUsage: true,
		RunE:         runCheck,
	}
	checkCmd.Flags().StringVarP(&checkText, "text", "t", "", "Text or URL to analyze")
	checkCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the verdict to a YAML file")

	mockCmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run a local classifier with the same /analyze contract",
		RunE:  runMockServer,
	}
	mockCmd.Flags().StringVar(&listenAddr, "addr", ":5000", "Listen address")
	mockCmd.Flags().BoolVar(&untrained, "untrained", false, "Answer every request with the model-not-loaded error")
	mockCmd.Flags().DurationVar(&latency, "latency", 0, "Delay every answer")
	mockCmd.Flags().BoolVar(&accessLog, "access-log", false, "Log every request")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ThreatScope version %s\n", version)
		},
	}

	rootCmd.AddCommand(checkCmd, mockCmd, versionCmd)
	return rootCmd
}

// loadConfig merges the config file with command line overrides.
func loadConfig() (*models.Config, error) {
	cfg, err := models.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if endpoint != "" {
		cfg.Server.Endpoint = endpoint
	}
	if timeout > 0 {
		cfg.Client.Timeout = timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveInput returns the text to analyze and its mode. An explicit --mode
// wins over the mode guessed from the input.
func resolveInput(text string) (string, *models.Mode, error) {
	var mode *models.Mode

	if inputFile != "" {
		in, err := source.LoadFile(inputFile)
		if err != nil {
			return "", nil, err
		}
		if in.Subject != "" {
			log.Printf("loaded message %q from %s", in.Subject, inputFile)
		}
		text = in.Text
		mode = &in.Mode
	} else if text != "" {
		guessed := source.GuessMode(text)
		mode = &guessed
	}

	if modeFlag != "" {
		m, err := models.ParseMode(modeFlag)
		if err != nil {
			return "", nil, err
		}
		mode = &m
	}
	return text, mode, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	text, mode, err := resolveInput("")
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		Config:      cfg,
		Analyzer:    client.New(client.OptionsFromConfig(cfg)),
		InitialText: text,
		Mode:        mode,
	})
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	raw := checkText
	if raw == "" {
		raw = strings.Join(args, " ")
	}
	text, mode, err := resolveInput(raw)
	if err != nil {
		return err
	}
	if mode == nil {
		mode = &cfg.UI.DefaultMode
	}

	out := cmd.OutOrStdout()
	ui.PrintBanner(out, version)

	req := models.NewAnalysisRequest(text, *mode)
	c := client.New(client.OptionsFromConfig(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	result, err := c.Analyze(ctx, req)
	if err != nil {
		ui.PrintError(out, client.UserMessage(err))
		var serverErr *client.ServerError
		if !errors.As(err, &serverErr) && !errors.Is(err, client.ErrEmptyInput) {
			log.Printf("analysis failed: %v", err)
		}
		return errors.New("analysis failed")
	}

	verdict := models.Verdict{
		Mode:        req.InputType,
		Input:       req.InputText,
		Result:      *result,
		AnalyzedAt:  start,
		ElapsedTime: time.Since(start),
	}
	ui.PrintVerdict(out, verdict)

	if outputFile != "" {
		if err := utils.NewYAMLWriter(cfg.Output.Dir).WriteVerdict(outputFile, verdict); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		ui.PrintSaved(out, outputFile)
	}

	if result.IsMalicious {
		os.Exit(exitMalicious)
	}
	return nil
}

func runMockServer(cmd *cobra.Command, args []string) error {
	srv := mockserver.New(mockserver.Options{
		Untrained: untrained,
		Latency:   latency,
		AccessLog: accessLog,
	})

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Listen(listenAddr)
	}()

	select {
	case err := <-errc:
		return err
	case <-sigChan:
		log.Println("shutting down mock classifier")
		return srv.Shutdown()
	}
}
