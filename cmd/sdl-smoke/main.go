package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/firodj/sdl-smoke/internal/app"
	"github.com/firodj/sdl-smoke/internal/config"
	"github.com/firodj/sdl-smoke/internal/platforms"
)

func init() {
	// SDL wants all video calls from the thread that initialized it.
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sdl-smoke",
		Level:           cfg.LogLevel,
	})

	os.Exit(app.Main(context.Background(), cfg, logger, platforms.Open))
}
