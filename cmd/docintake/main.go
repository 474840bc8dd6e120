package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/wicaksana/docintake"
	"github.com/wicaksana/docintake/ocr"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (JSON)")
	fileType := flag.String("type", "", "Declared file type (pdf, docx, xlsx, png, ...); inferred from the extension when empty")
	timeout := flag.Duration("timeout", 5*time.Minute, "Per-file processing timeout")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file>...\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := docintake.DefaultConfig()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			slog.Error("opening config", "error", err)
			os.Exit(1)
		}
		if err := json.NewDecoder(f).Decode(&cfg); err != nil {
			f.Close()
			slog.Error("parsing config", "error", err)
			os.Exit(1)
		}
		f.Close()
	}

	// Override from environment variables.
	if v := os.Getenv("DOCINTAKE_OCR_LANGUAGES"); v != "" {
		cfg.OCRLanguages = strings.Split(v, ",")
	}

	pipeline := docintake.New(cfg,
		docintake.WithLogger(logger),
		docintake.WithOCREngine(ocr.NewTesseractEngine(cfg.OCRLanguages...)),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	exitCode := 0
	for _, path := range flag.Args() {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		doc := pipeline.Process(ctx, path, *fileType)
		cancel()

		if err := enc.Encode(doc); err != nil {
			slog.Error("encoding result", "file", path, "error", err)
			os.Exit(1)
		}
		if !doc.Success {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}
