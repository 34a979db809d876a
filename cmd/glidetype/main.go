/*
Glidetype is a predictive-text and gesture-typing engine. It serves ranked
word candidates for typed prefixes and finger-drag paths, decides when a
correction should silently replace the typed word, and adapts its ranking
from accept/reject feedback.

The default mode starts a msgpack IPC server on stdin/stdout for host
keyboards and editors. CLI mode gives an interactive loop for testing
dictionaries and thresholds.

# Usage

Start the server with resources from a directory:

	glidetype -data /path/to/resources -langs en

Run the interactive CLI instead:

	glidetype -data data/ -c -limit 10

The data directory holds per-language assets: <lang>_words.txt ("word freq"
lines) or a compiled <lang>.bin trie, plus optional <lang>_bigrams.txt,
<lang>_trigrams.txt and <lang>_shortcuts.txt.

# Configuration

Engine tunables live in a TOML file created with defaults on first run:

	[suggest]
	edit_penalty = 3.0
	bigram_weight = 2.5

	[autocorrect]
	min_word_length = 3
	required_base = 3.0

	[timing]
	fast_key_millis = 180
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/glidetype/glidetype/internal/cli"
	"github.com/glidetype/glidetype/pkg/config"
	"github.com/glidetype/glidetype/pkg/engine"
	"github.com/glidetype/glidetype/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "glidetype"
)

// sigHandler exits cleanly on interrupt.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages flow; the engine, server and CLI packages hold the logic.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "data/", "Directory containing language resources")
	configPath := flag.String("config", "", "Path to config.toml (default: user config dir)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run interactive CLI instead of the IPC server")
	langs := flag.String("langs", "en", "Comma-separated language codes to preload")
	limit := flag.Int("limit", 0, "Suggestion limit for CLI mode (0 = config default)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", AppName, Version)
		return
	}
	if *debugMode {
		log.SetLevel(log.DebugLevel)
	}

	cfg, cfgPath := config.LoadWithPriority(*configPath)
	if cfgPath != "" {
		log.Debugf("Using config: %s", cfgPath)
	}

	eng := engine.NewWithDir(cfg, *dataDir)
	langList := strings.Split(*langs, ",")
	if err := eng.PreloadLanguages(context.Background(), langList); err != nil {
		log.Warnf("Some languages failed to preload: %v", err)
	}
	for _, lang := range langList {
		if !eng.HasLanguage(lang) {
			log.Warnf("Language %q is not available", lang)
		}
	}

	if *cliMode {
		n := *limit
		if n <= 0 {
			n = cfg.Server.DefaultLimit
		}
		handler := cli.NewInputHandler(eng, langList[0], n)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	srv := server.NewServer(eng, cfg.Server)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
