package main

import (
	"fmt"
	"io"
	"sync"

	hww "github.com/jmbenlloch/hww_dqm/pkg"
)

func worker(id int, analyzer *hww.Analyzer, jobs <-chan *hww.SourceEvent, wg *sync.WaitGroup) {
	defer wg.Done()
	for src := range jobs {
		if VerbosityLevel > 2 {
			logger.Info(fmt.Sprintf("Worker %d processing event %d", id, src.Event), "workers")
		}
		processEvent(analyzer, src)
	}
}

func sendEventsToWorkers(fileReader *FileReader, jobs chan<- *hww.SourceEvent) {
	defer close(jobs)
	for {
		src, err := fileReader.getNextEvent()
		if err != nil {
			if err != io.EOF {
				message := fmt.Errorf("error reading event: %w", err)
				logger.Error(message.Error())
			}
			return
		}
		jobs <- src
	}
}

// runParallel gives every worker its own Analyzer, and therefore its own
// Monitor, and merges the monitors once all events are processed.
func runParallel(fileReader *FileReader, newAnalyzer func() *hww.Analyzer, nWorkers int) *hww.Monitor {
	jobs := make(chan *hww.SourceEvent, 100)
	analyzers := make([]*hww.Analyzer, nWorkers)

	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		analyzers[w] = newAnalyzer()
		wg.Add(1)
		go worker(w+1, analyzers[w], jobs, &wg)
	}
	sendEventsToWorkers(fileReader, jobs)
	wg.Wait()

	merged := hww.NewMonitor()
	merged.Declare(analyzers[0].Cutflow().Names()...)
	for _, a := range analyzers {
		merged.Merge(a.Monitor)
	}
	return merged
}
