package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	internalLoader "github.com/goliatone/go-formstate/internal/openapi/loader"
	"github.com/goliatone/go-formstate/pkg/feedback"
	"github.com/goliatone/go-formstate/pkg/logutil"
	pkgopenapi "github.com/goliatone/go-formstate/pkg/openapi"
	"github.com/goliatone/go-formstate/pkg/orchestrator"
	"github.com/goliatone/go-formstate/pkg/render"
	"github.com/goliatone/go-formstate/pkg/renderers/html"
	"github.com/goliatone/go-formstate/pkg/renderers/tui"
)

func main() {
	source := flag.String("source", "openapi.json", "OpenAPI document path or URL")
	operation := flag.String("operation", "", "operation ID to render")
	renderer := flag.String("renderer", "html", "renderer to use (html, tui)")
	strategy := flag.String("strategy", "", "default display strategy (immediate, on-touch, on-submit, manual)")
	messages := flag.String("messages", "", "directory of message registry files (json/yaml)")
	output := flag.String("output", "", "output file (stdout if empty)")
	logLevel := flag.String("log-level", "warn", "log level (trace..panic)")
	logFile := flag.String("log-file", "", "log file (stderr if empty)")
	flag.Parse()

	logger, closeLog, err := logutil.New(*logLevel, *logFile)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer closeLog()

	if *operation == "" {
		logger.Fatal().Msg("operation id is required")
	}

	src := parseSource(*source)
	if src == nil {
		logger.Fatal().Str("source", *source).Msg("invalid source")
	}

	cfg, err := messageConfig(*strategy, *messages)
	if err != nil {
		logger.Fatal().Err(err).Msg("message configuration")
	}

	registry := render.NewRegistry()
	htmlRenderer, err := html.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("html renderer")
	}
	registry.MustRegister(htmlRenderer)
	tuiRenderer, err := tui.New(tui.WithLogger(logger))
	if err != nil {
		logger.Fatal().Err(err).Msg("tui renderer")
	}
	registry.MustRegister(tuiRenderer)

	gen := orchestrator.New(
		orchestrator.WithLoader(internalLoader.New(pkgopenapi.NewLoaderOptions(
			pkgopenapi.WithFileSystem(os.DirFS(".")),
			pkgopenapi.WithHTTPFallback(30*time.Second),
		))),
		orchestrator.WithRegistry(registry),
		orchestrator.WithMessages(cfg),
		orchestrator.WithLogger(logger),
	)

	out, err := gen.Generate(context.Background(), orchestrator.Request{
		Source:      src,
		OperationID: *operation,
		Renderer:    *renderer,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("generate form")
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			logger.Fatal().Err(err).Str("path", *output).Msg("write output")
		}
		fmt.Printf("Form written to %s\n", *output)
		return
	}
	fmt.Println(string(out))
}

func parseSource(raw string) pkgopenapi.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return pkgopenapi.SourceFromURL(path)
	}
	return pkgopenapi.SourceFromFile(path)
}

func messageConfig(strategy, messagesDir string) (*feedback.Config, error) {
	var options []feedback.Option

	if strategy != "" {
		parsed, err := feedback.ParseStrategy(strategy)
		if err != nil {
			return nil, err
		}
		options = append(options, feedback.WithDefaultStrategy(parsed))
	}

	if messagesDir != "" {
		registry := feedback.NewRegistry()
		if err := registry.LoadFS(os.DirFS(messagesDir)); err != nil {
			return nil, err
		}
		options = append(options, feedback.WithRegistry(registry))
	}

	if len(options) == 0 {
		return feedback.Default(), nil
	}
	return feedback.NewConfig(options...), nil
}
