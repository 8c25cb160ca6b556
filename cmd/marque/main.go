// cmd/marque/main.go
package main

import (
	"fmt"
	"os"

	"github.com/bethropolis/marque/internal/app"
	"github.com/bethropolis/marque/internal/config"
	"github.com/bethropolis/marque/internal/logger"
)

// version is stamped by the build.
var version = "dev"

func main() {
	flags := &config.Flags{}
	args := flags.ParseFlags()

	if flags.Version != nil && *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}

	// Config must be loaded before the logger exists, so a load failure
	// can only go to stderr.
	cfg, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: problem loading configuration: %v\n", err)
	}

	if err := logger.Init(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logger initialization failed: %v\n", err)
	}
	defer logger.Close()

	logger.Infof("Starting %s...", config.AppName)
	if filePath != "" {
		logger.Debugf("Document path specified: %s", filePath)
	} else {
		logger.Debugf("No document specified, starting empty.")
	}

	marqueApp, err := app.NewApp(filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}

	if err := marqueApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "Application exited with error: %v\n", err)
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}
