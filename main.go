package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/peterh/liner"

	"github.com/havrydotdev/lx/config"
	"github.com/havrydotdev/lx/report"
	"github.com/havrydotdev/lx/session"
)

const version = "0.1.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("lx", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file (default ~/"+config.DefaultFile+" if present)")
	logLevel := fs.String("log-level", "", "log level, overrides the config file")
	mode := fs.String("print", "", "print the parsed program instead of running it: ast or rpn")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: lx [flags] [script]\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return report.ExitUsage
	}

	if fs.NArg() > 1 {
		fs.Usage()
		return report.ExitUsage
	}

	log.SetDefaultsForClientTools()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Errf("%v", err)
		return report.ExitUsage
	}

	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	lvl, err := log.ValidateLevel(cfg.LogLevel)
	if err != nil {
		log.Errf("invalid log level %q: %v", cfg.LogLevel, err)
		return report.ExitUsage
	}

	log.SetLogLevel(lvl)

	m, err := session.ParseMode(*mode)
	if err != nil {
		log.Errf("%v", err)
		return report.ExitUsage
	}

	s := session.New(session.Options{Mode: m, MaxCallDepth: cfg.MaxCallDepth})

	if fs.NArg() == 1 {
		return runFile(s, fs.Arg(0))
	}

	return runPrompt(s, cfg)
}

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path, false)
	}

	if path = config.DefaultPath(); path == "" {
		return config.Default(), nil
	}

	return config.Load(path, true)
}

func runFile(s *session.Session, path string) int {
	text, err := os.ReadFile(path)
	if err != nil {
		log.Errf("can't read %s: %v", path, err)
		return report.ExitIOErr
	}

	log.Debugf("running %s", path)

	_ = s.Run(string(text))

	return s.Reporter().ExitCode()
}

func runPrompt(s *session.Session, cfg config.Config) int {
	fmt.Printf("lx %s\nCtrl+C cancels the line, Ctrl+D exits.\n", version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}

		defer func() {
			f, err := os.Create(histPath)
			if err != nil {
				log.Warnf("can't save history to %s: %v", histPath, err)
				return
			}

			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	for {
		line, err := ln.Prompt(cfg.Prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return report.ExitOK
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}

		if err != nil {
			log.Errf("reading input: %v", err)
			return report.ExitIOErr
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		ln.AppendHistory(line)

		// errors are already reported, the REPL keeps going
		_ = s.RunLine(line)
	}
}
