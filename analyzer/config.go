package main

import (
	"fmt"

	hww "github.com/jmbenlloch/hww_dqm/pkg"
)

func printConfiguration(config hww.Configuration, logger hww.Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Metrics file: %s", config.MetricsFile), "config")
	logger.Info(fmt.Sprintf("Run number: %d", config.RunNumber), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Parallel: %t", config.Parallel), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Histogram bins: %d", config.NumBins), "config")
	for i, path := range config.EGammaWeights {
		logger.Info(fmt.Sprintf("EGamma weights %d: %s", i+1, path), "config")
	}
	for i, path := range config.MuonIsoWeights {
		logger.Info(fmt.Sprintf("Muon iso weights %d: %s", i+1, path), "config")
	}
	logger.Info(fmt.Sprintf("Thresholds: %+v", config.Thresholds), "config")
}
