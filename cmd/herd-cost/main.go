package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/herd-cost/internal/config"
	"github.com/iwvelando/herd-cost/internal/session"
	"github.com/iwvelando/herd-cost/pkg/constants"
	"github.com/iwvelando/herd-cost/pkg/logging"
	"github.com/iwvelando/herd-cost/pkg/output"
	"github.com/iwvelando/herd-cost/pkg/validation"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// assignments collects repeated -set field=value flags.
type assignments []session.SetInput

func (a *assignments) String() string {
	parts := make([]string, len(*a))
	for i, set := range *a {
		parts[i] = set.String()
	}
	return strings.Join(parts, ",")
}

func (a *assignments) Set(value string) error {
	set, err := parseAssignment(value)
	if err != nil {
		return err
	}
	*a = append(*a, set)
	return nil
}

func parseAssignment(value string) (session.SetInput, error) {
	field, raw, ok := strings.Cut(value, "=")
	field = strings.TrimSpace(field)
	if !ok || field == "" {
		return session.SetInput{}, fmt.Errorf("expected field=value, got %q", value)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return session.SetInput{}, fmt.Errorf("invalid value for %s: %w", field, err)
	}
	return session.SetInput{Field: field, Value: n}, nil
}

// splitList splits a comma separated flag value, dropping blanks.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// loadConfiguration reads the config file. A missing file at the default
// location falls back to the built-in defaults.
func loadConfiguration(path string, explicit bool) (*config.Configuration, error) {
	conf, err := config.LoadConfiguration(path)
	if err == nil {
		return conf, nil
	}
	if _, statErr := os.Stat(path); !explicit && errors.Is(statErr, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, err
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	monthsFlag := flag.String("months", "", "comma separated months replacing the configured selection, e.g. Jan,Fev")
	toggleFlag := flag.String("toggle", "", "comma separated months to toggle after loading")
	exportDir := flag.String("export-dir", "", "directory to write the CSV export to")
	var sets assignments
	flag.Var(&sets, "set", "input change as field=value (repeatable)")
	flag.Parse()

	explicitConfig := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicitConfig = true
		}
	})

	// Variables from .env feed viper's environment overrides.
	_ = godotenv.Load()

	conf, err := loadConfiguration(*configLocation, explicitConfig)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if *monthsFlag != "" {
		conf.SetMonths(splitList(*monthsFlag))
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	sel, err := conf.Selection()
	if err != nil {
		logger.Fatal("invalid month selection",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	reportDate, err := conf.ReportDate(time.Now())
	if err != nil {
		logger.Fatal("invalid report date",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	sess := session.New(logger, session.NewState(conf.Inputs, sel), session.Options{
		CommitDelay: conf.Session.CommitDelay,
		ExportDelay: conf.Session.ExportDelay,
		ReportDate:  reportDate,
	})

	var events []session.Event
	for _, set := range sets {
		events = append(events, set)
	}
	for _, month := range splitList(*toggleFlag) {
		events = append(events, session.ToggleMonth{Month: month})
	}
	for _, event := range events {
		if _, err := sess.Propose(event); err != nil {
			logger.Warn("change not applied",
				zap.String("op", "main"),
				zap.String("event", event.String()),
				zap.Error(err),
			)
		}
	}

	view, err := sess.View()
	if err != nil {
		logger.Fatal("failed to compute dashboard",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(view)
	case constants.OutputFormatCSV:
		output.CsvFormat(view)
	case constants.OutputFormatJSON:
		output.JSONFormat(view)
	}

	dir := *exportDir
	if dir == "" {
		dir = conf.Output.ExportDir
	}
	if dir != "" {
		exp, err := sess.Export()
		if err != nil {
			logger.Fatal("failed to export dashboard",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Fatal("failed to create export directory",
				zap.String("op", "main"),
				zap.String("dir", dir),
				zap.Error(err),
			)
		}
		path := filepath.Join(dir, exp.FileName)
		if err := os.WriteFile(path, exp.Content, 0644); err != nil {
			logger.Fatal("failed to write export",
				zap.String("op", "main"),
				zap.String("path", path),
				zap.Error(err),
			)
		}
		logger.Info("export written",
			zap.String("op", "main"),
			zap.String("path", path),
		)
	}
}
