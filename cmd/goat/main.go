// Command goat loads a compiled Goat bytecode image and runs it to
// completion.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/goatlang/goat"
)

func main() {
	configPath := flag.String("config", "", "path to a process tuning YAML file")
	verbose := flag.Bool("v", false, "enable debug-level logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: goat [-config file] [-v] <bytecode-file>")
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var cfg *goat.Config
	if *configPath != "" {
		var err error
		cfg, err = goat.LoadConfig(*configPath)
		if err != nil {
			logger.Error("loading config", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}

	image, err := goat.LoadBytecode(flag.Arg(0))
	if err != nil {
		logger.Error("loading bytecode", "path", flag.Arg(0), "error", err)
		os.Exit(1)
	}

	process := goat.NewProcess(cfg, logger)
	code, err := goat.Run(process, image)
	if err != nil {
		logger.Error("runtime error", "error", err)
		os.Exit(1)
	}
	os.Exit(code)
}
