// Command stac-go is a minimal boundary CLI wiring the core library's
// components, per spec.md §6: the full command-line front-end (argument
// parsing conventions, verbosity knobs, streaming) is an external
// collaborator, so this binary only demonstrates the run(args, input,
// output) shape against two subcommands, convert and serve.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robert-malhotra/stac-go/internal/config"
	"github.com/robert-malhotra/stac-go/pkg/format"
	"github.com/robert-malhotra/stac-go/pkg/migrate"
	"github.com/robert-malhotra/stac-go/pkg/objectstore"
	"github.com/robert-malhotra/stac-go/pkg/server"
)

// Exit codes, per spec.md §6.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitValidation = 2
	ExitUsage      = 64
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "convert":
		return runConvert(args[1:])
	case "serve":
		return runServe(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "stac-go: unknown command %q\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: stac-go <convert|serve> [flags]")
}

// runConvert decodes the entity at inputHref, optionally migrates it, and
// re-encodes it at outputHref, exercising FormatCodec, ObjectStoreGateway,
// and Migration together against real hrefs.
func runConvert(args []string) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fromFormat := fs.String("from", "", "input format override (json, json-pretty, ndjson, geoparquet[codec])")
	toFormat := fs.String("to", "", "output format override")
	migrateFrom := fs.String("migrate-from", "", "source STAC version, e.g. 1.0.0")
	migrateTo := fs.String("migrate-to", "", "target STAC version, e.g. 1.1.0")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: stac-go convert [flags] <input-href> <output-href>")
		return ExitUsage
	}
	inputHref, outputHref := fs.Arg(0), fs.Arg(1)

	ctx := context.Background()
	gw := objectstore.NewGateway(0)

	inFmt, err := resolveFormat(*fromFormat, inputHref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stac-go: %v\n", err)
		return ExitUsage
	}
	outFmt, err := resolveFormat(*toFormat, outputHref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stac-go: %v\n", err)
		return ExitUsage
	}

	data, err := readHref(ctx, gw, inputHref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stac-go: %v\n", err)
		return ExitError
	}

	entity, err := format.Decode(data, inFmt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stac-go: decoding %s: %v\n", inputHref, err)
		return ExitValidation
	}

	if *migrateFrom != "" && *migrateTo != "" {
		jsonData, err := format.EncodeJSON(entity, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "stac-go: %v\n", err)
			return ExitError
		}
		migrated, err := migrate.JSON(jsonData, *migrateFrom, *migrateTo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "stac-go: migrating: %v\n", err)
			return ExitError
		}
		entity, err = format.DecodeJSON(migrated)
		if err != nil {
			fmt.Fprintf(os.Stderr, "stac-go: decoding migrated entity: %v\n", err)
			return ExitError
		}
	}

	out, err := format.Encode(entity, outFmt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stac-go: encoding %s: %v\n", outputHref, err)
		return ExitError
	}

	if err := writeHref(ctx, gw, outputHref, out); err != nil {
		fmt.Fprintf(os.Stderr, "stac-go: %v\n", err)
		return ExitError
	}
	return ExitOK
}

func resolveFormat(override, href string) (format.Format, error) {
	if override != "" {
		return format.Parse(override)
	}
	return format.InferFromHref(href), nil
}

func readHref(ctx context.Context, gw *objectstore.Gateway, href string) ([]byte, error) {
	if href == "-" {
		return readAllStdin()
	}
	handle, path, err := gw.Open(ctx, href, nil)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", href, err)
	}
	return handle.Get(ctx, path)
}

func writeHref(ctx context.Context, gw *objectstore.Gateway, href string, data []byte) error {
	if href == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	handle, path, err := gw.Open(ctx, href, nil)
	if err != nil {
		return fmt.Errorf("opening %s: %w", href, err)
	}
	_, err = handle.Put(ctx, path, data)
	return err
}

func readAllStdin() ([]byte, error) {
	var data []byte
	buf := make([]byte, 32*1024)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return data, nil
			}
			return data, err
		}
	}
}

// runServe starts the pkg/server HTTP boundary adapter over an empty
// ItemSource, suitable as a health-checkable mount point for a host
// application to wire a real ItemSource onto.
func runServe(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stac-go: %v\n", err)
		return ExitError
	}

	logger := setupLogger(cfg.Logging.Level, cfg.Logging.Format)

	srv, err := server.New(server.Options{
		BaseURL: cfg.Server.BaseURL,
		Source:  server.NewMemoryItemSource(nil),
		Logger:  logger,
	})
	if err != nil {
		logger.Error("building server", "error", err)
		return ExitError
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server error", "error", err)
		return ExitError
	case sig := <-quit:
		logger.Info("received shutdown signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		return ExitError
	}
	logger.Info("server stopped")
	return ExitOK
}

func setupLogger(level, logFormat string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler
	if logFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
