package main

import (
	"os"

	colorable "github.com/mattn/go-colorable"
	log "github.com/sirupsen/logrus"

	"github.com/Azure/kvsample/pkg/cmd"
	"github.com/Azure/kvsample/pkg/config"
)

func main() {
	log.SetFormatter(&log.TextFormatter{ForceColors: true})
	log.SetOutput(colorable.NewColorableStdout())

	if err := config.LoadDotEnv(".env"); err != nil {
		log.WithError(err).Warn("failed to load .env file")
	}
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
