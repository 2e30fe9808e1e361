package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	hww "github.com/jmbenlloch/hww_dqm/pkg"
)

var logger = hww.NewSlogLogger(os.Stdout, os.Stderr)

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	runsFlag := flag.String("runs", "", "Comma separated list of run numbers")
	output := flag.String("out", "", "Output file, overrides file_out")
	flag.Parse()

	configuration, err := hww.LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	if *output != "" {
		configuration.FileOut = *output
	}
	hww.SetConfiguration(configuration)
	hww.SetLogger(logger)

	runs, err := parseRuns(*runsFlag)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	dbConn, err := hww.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
	if err != nil {
		message := fmt.Errorf("Error connection to database: %w", err)
		logger.Error(message.Error())
		os.Exit(1)
	}
	defer dbConn.Close()

	merged := hww.NewMonitor()
	for _, run := range runs {
		monitor, err := hww.LoadCutflow(dbConn, run)
		if err != nil {
			logger.Error(fmt.Errorf("error loading run %d: %w", run, err).Error())
			continue
		}
		if monitor.Len() == 0 {
			logger.Info(fmt.Sprintf("No cutflow stored for run %d", run), "merge")
			continue
		}
		merged.Merge(monitor)
		message := fmt.Sprintf("Run %d: %d events", run, monitor.Events(hww.MM, hww.TotalEvents))
		logger.Info(message, "merge")
	}

	if err := writeOutputs(configuration, merged); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	logger.Info(fmt.Sprintf("Merged %d runs into %s", len(runs), configuration.FileOut), "merge")
}

func parseRuns(s string) ([]int, error) {
	var runs []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		run, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid run number %q: %w", field, err)
		}
		runs = append(runs, run)
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no runs given")
	}
	return runs, nil
}

func writeOutputs(configuration hww.Configuration, merged *hww.Monitor) error {
	writer, err := hww.NewHistogramWriter(configuration.FileOut, configuration.CompressionLevel)
	if err != nil {
		return err
	}
	nBins := configuration.NumBins
	if merged.Len() > nBins {
		nBins = merged.Len()
	}
	if err := hww.BookHistograms(writer, nBins); err != nil {
		writer.Close()
		return err
	}
	if err := merged.FillHistograms(writer); err != nil {
		writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	if configuration.MetricsFile != "" {
		exporter := hww.NewCutflowExporter("hww")
		exporter.Observe(merged)
		return exporter.WriteTextfile(configuration.MetricsFile)
	}
	return nil
}
