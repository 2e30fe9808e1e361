package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	hww "github.com/jmbenlloch/hww_dqm/pkg"
)

var configuration hww.Configuration

var (
	logger         hww.SlogLogger
	VerbosityLevel int
)

func init() {
	logger = hww.NewSlogLogger(os.Stdout, os.Stderr)
}

func fatal(err error, context string) {
	message := fmt.Errorf("%s: %w", context, err)
	logger.Error(message.Error())
	os.Exit(1)
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = hww.LoadConfiguration(*configFilename)
	if err != nil {
		fatal(err, "Error reading configuration file")
	}
	if err := configuration.Validate(); err != nil {
		fatal(err, "Invalid configuration")
	}
	hww.SetConfiguration(configuration)
	hww.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	jobID := uuid.NewString()
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		logger.Info(fmt.Sprintf("Job ID: %s", jobID), "main")
		printConfiguration(configuration, logger)
	}

	electronID, err := hww.LoadEGammaEstimator(configuration.EGammaWeights)
	if err != nil {
		fatal(err, "Error loading electron ID weights")
	}
	muonIso, err := hww.LoadMuonIsoEstimator(configuration.MuonIsoWeights)
	if err != nil {
		fatal(err, "Error loading muon isolation weights")
	}
	newAnalyzer := func() *hww.Analyzer {
		return hww.NewAnalyzer(electronID, muonIso, configuration.Thresholds)
	}

	writer, err := hww.NewHistogramWriter(configuration.FileOut, configuration.CompressionLevel)
	if err != nil {
		fatal(err, "Error creating output file")
	}
	if err := hww.BookHistograms(writer, configuration.NumBins); err != nil {
		fatal(err, "Error booking histograms")
	}

	file, err := os.Open(configuration.FileIn)
	if err != nil {
		fatal(err, "Error opening file")
	}
	defer file.Close()
	fileReader := NewFileReader(file)

	start := time.Now()
	var monitor *hww.Monitor
	if configuration.Parallel && configuration.NumWorkers > 1 {
		monitor = runParallel(fileReader, newAnalyzer, configuration.NumWorkers)
	} else {
		monitor = runSequential(fileReader, newAnalyzer())
	}
	duration := time.Since(start)
	message := fmt.Sprintf("Total events processed: %d in %d ms", monitor.Events(hww.MM, hww.TotalEvents), duration.Milliseconds())
	logger.Info(message, "main")

	if err := monitor.FillHistograms(writer); err != nil {
		logger.Error(fmt.Errorf("error filling histograms: %w", err).Error())
	}
	if err := writer.Close(); err != nil {
		logger.Error(fmt.Errorf("error closing output file: %w", err).Error())
	}

	if configuration.MetricsFile != "" {
		exporter := hww.NewCutflowExporter("hww")
		exporter.Observe(monitor)
		if err := exporter.WriteTextfile(configuration.MetricsFile); err != nil {
			logger.Error(fmt.Errorf("error writing metrics: %w", err).Error())
		}
	}

	if !configuration.NoDB {
		if err := storeCutflow(configuration, jobID, monitor); err != nil {
			fatal(err, "Error storing cutflow")
		}
	}
}

func storeCutflow(config hww.Configuration, jobID string, monitor *hww.Monitor) error {
	dbConn, err := hww.ConnectToDatabase(config.User, config.Passwd, config.Host, config.DBName)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer dbConn.Close()
	return hww.StoreCutflow(dbConn, jobID, config.RunNumber, monitor)
}

func runSequential(fileReader *FileReader, analyzer *hww.Analyzer) *hww.Monitor {
	for {
		src, err := fileReader.getNextEvent()
		if err != nil {
			if err != io.EOF {
				message := fmt.Errorf("error reading event: %w", err)
				logger.Error(message.Error())
			}
			break
		}
		processEvent(analyzer, src)
	}
	return analyzer.Monitor
}

func processEvent(analyzer *hww.Analyzer, src *hww.SourceEvent) {
	defer func() {
		if r := recover(); r != nil {
			errMessage := fmt.Errorf("analyzer recovered from panic on event %d: %v", src.Event, r)
			logger.Error(errMessage.Error())
			message := fmt.Sprintf("discarding event %d", src.Event)
			logger.Error(message)
		}
	}()

	res := analyzer.Analyze(src)
	if VerbosityLevel > 1 {
		message := fmt.Sprintf("Event %d: %d hypotheses, %d good, %d candidates, %d stages passed",
			res.EventID, res.Hypotheses, len(res.GoodHyps), len(res.Candidates), res.StagesPassed)
		logger.Info(message, "main")
	}
}
