package main

import (
	"fmt"
	"os"

	"banditLab/pkg/logger"
)

func main() {
	// stdout carries the report.
	logger.InitTo(os.Stderr, os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
