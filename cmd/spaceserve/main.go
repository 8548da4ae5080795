/*
Package main implements the space restoration server and CLI application.

SpaceServe restores omitted word-boundary spaces to runs of characters
("thisisasentence" -> "this is a sentence") using a Naive Bayes frequency
model trained from correctly spaced text. It can operate as a msgpack IPC
server for integration with editors and pipelines, or as a CLI application
for training, testing and debugging.

# Usage

Train a model from a corpus file (one document per line) and save it:

	spaceserve -train corpus.txt -model /path/to/model

Start the server over a saved model with default settings:

	spaceserve -model /path/to/model

Run in CLI mode for interactive testing:

	spaceserve -model /path/to/model -c -L 10 -lambda 10

# Configuration

Runtime configuration is managed through a TOML file holding inference
and model settings:

	[restore]
	max_word_len = 20
	lambda = 10.0
	window = 80
	cache_size = 1000000
	ignore_case = true

	[model]
	dir = "model/"

The config file is automatically created with defaults if it doesn't
exist. Flags override the configured values for a single run.

# IPC Protocol

The server communicates via msgpack over stdin/stdout. Restore requests
carry the unspaced text and optional hyperparameter overrides:

	{"id": "req1", "x": "thecatsatonthemat", "l": 10, "la": 10.0}

Responses contain the restored text with word count and microsecond
timing:

	{"id": "req1", "r": "the cat sat on the mat", "c": 6, "t": 145}

# Tamil mode

With -tamil, input text is rewritten so every user-perceived Tamil letter
becomes a single codepoint before training or restoration, and rewritten
back afterwards. The length-based smoothing in the model requires one
unit per perceived character for scripts whose letters span several
codepoints.

# Command Line Flags

The following flags control application behavior:

	-train string
	    Corpus file to train from (one document per line)
	-model string
	    Model directory to save to or load from (default from config)
	-config string
	    Custom config file path
	-c  Run in CLI mode instead of server mode
	-d  Enable debug mode with detailed logging
	-tamil
	    Map Tamil perceived characters to single codepoints around
	    training and restoration
	-L int
	    Maximum candidate word length in runes
	-lambda float
	    Smoothing weight for unseen words
	-ignore-case
	    Lowercase training text so case variants count as one word
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/spaceserve/internal/cli"
	"github.com/bastiangx/spaceserve/pkg/config"
	"github.com/bastiangx/spaceserve/pkg/ngram"
	"github.com/bastiangx/spaceserve/pkg/restore"
	"github.com/bastiangx/spaceserve/pkg/script"
	"github.com/bastiangx/spaceserve/pkg/server"
)

const (
	Version = "0.2.0"
	AppName = "spaceserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to train, serve or handle CLI input.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Custom config file path")
	trainFile := flag.String("train", "", "Corpus file to train from (one document per line)")
	modelDir := flag.String("model", "", "Model directory to save to or load from")
	tamilMode := flag.Bool("tamil", false, "Apply the Tamil perceived-character mapping")
	maxWordLen := flag.Int("L", defaults.Restore.MaxWordLen, "Maximum candidate word length in runes")
	lambda := flag.Float64("lambda", defaults.Restore.Lambda, "Smoothing weight for unseen words")
	ignoreCase := flag.Bool("ignore-case", defaults.Restore.IgnoreCase, "Lowercase training text")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	activeConfigPath := *configPath
	if activeConfigPath == "" {
		var err error
		activeConfigPath, err = config.GetDefaultConfigPath()
		if err != nil {
			log.Fatalf("Failed to determine config path: (%v)", err)
		}
	}
	appConfig, err := config.InitConfig(activeConfigPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", activeConfigPath)

	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	params, foldCase := effectiveSettings(appConfig, setFlags, *maxWordLen, *lambda, *ignoreCase)

	dir := appConfig.Model.Dir
	if *modelDir != "" {
		dir = *modelDir
	}

	var mapper *script.Mapper
	if *tamilMode {
		mapper, err = script.NewTamilMapper()
		if err != nil {
			log.Fatalf("Failed to build Tamil mapper: %v", err)
		}
		log.Debugf("Tamil mapping active: %d perceived characters", mapper.Size())
	}

	if *trainFile != "" {
		train(*trainFile, dir, foldCase, mapper)
		return
	}

	model, err := ngram.Load(dir)
	if err != nil {
		log.Fatalf("Failed to load model from %s: %v", dir, err)
	}
	restorer, err := restore.New(model, appConfig.Restore.CacheSize, appConfig.Restore.Window)
	if err != nil {
		log.Fatalf("Failed to init restorer: %v", err)
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:", "L", params.MaxWordLen, "lambda", params.Lambda)

		inputHandler := cli.NewInputHandler(restorer, params)
		inputHandler.SetMapper(mapper)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	appConfig.Restore.MaxWordLen = params.MaxWordLen
	appConfig.Restore.Lambda = params.Lambda
	srv := server.NewServer(restorer, appConfig)

	showStartupInfo(dir)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// effectiveSettings resolves the inference settings: configured values
// first, overridden only by flags the user explicitly set. An unset flag
// carries the built-in default, which must not clobber the config file.
func effectiveSettings(cfg *config.Config, set map[string]bool, maxWordLen int, lambda float64, ignoreCase bool) (restore.Params, bool) {
	params := restore.Params{
		MaxWordLen: cfg.Restore.MaxWordLen,
		Lambda:     cfg.Restore.Lambda,
	}
	fold := cfg.Restore.IgnoreCase
	if set["L"] {
		params.MaxWordLen = maxWordLen
	}
	if set["lambda"] {
		params.Lambda = lambda
	}
	if set["ignore-case"] {
		fold = ignoreCase
	}
	return params, fold
}

// train builds and saves a model from a corpus file, one document per
// line. With a mapper set, documents are rewritten to one codepoint per
// perceived character before counting.
func train(corpusPath, modelDir string, ignoreCase bool, mapper *script.Mapper) {
	file, err := os.Open(corpusPath)
	if err != nil {
		log.Fatalf("Failed to open corpus file: %v", err)
	}
	defer file.Close()

	var docs []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		doc := scanner.Text()
		if mapper != nil {
			doc = mapper.MapText(doc)
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Failed to read corpus file: %v", err)
	}

	model, err := ngram.Train(docs, ignoreCase, modelDir)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}

	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	log.Infof("Training complete: %d documents, %d distinct words", len(docs), model.VocabSize())
	log.Infof("Model saved to ( %s )", modelDir)
	log.SetLevel(currentLevel)
}

// printVersion displays version info with some styling.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ SpaceServe ] Restores word-boundary spaces!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(modelDir string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("============")
	println(" SpaceServe ")
	println("============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("model dir: ( %s )", modelDir)
	log.Info("status: ready")
	println("============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
