// runner-web is the browser build of the window host:
//
//	GOOS=js GOARCH=wasm go build -o runner.wasm ./cmd/runner-web
//
// It plays the timed variant with the built-in config.
package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/runner-arcade/internal/config"
	"github.com/vovakirdan/runner-arcade/internal/platform/window"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "runner"})

	err := window.Run(window.Options{
		Variant: config.VariantTimed,
		Title:   "Runner",
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("window host stopped", "err", err)
	}
}
