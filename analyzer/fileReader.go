package main

import (
	"encoding/json"
	"fmt"
	"io"

	hww "github.com/jmbenlloch/hww_dqm/pkg"
)

// FileReader streams SourceEvents from a file of concatenated JSON
// documents, honoring the skip and max_events settings.
type FileReader struct {
	decoder  *json.Decoder
	EvtCount int
}

func NewFileReader(r io.Reader) *FileReader {
	return &FileReader{decoder: json.NewDecoder(r), EvtCount: -1}
}

func (f *FileReader) getNextEvent() (*hww.SourceEvent, error) {
	for {
		src := &hww.SourceEvent{}
		if err := f.decoder.Decode(src); err != nil {
			return nil, err
		}
		f.EvtCount++
		if f.EvtCount >= configuration.MaxEvents {
			if VerbosityLevel > 0 {
				logger.Info("Max events reached", "fileReader")
			}
			return nil, io.EOF
		}
		if f.EvtCount < configuration.Skip {
			if VerbosityLevel > 1 {
				message := fmt.Sprintf("Skipping event %d with ID %d", f.EvtCount, src.Event)
				logger.Info(message, "fileReader")
			}
			continue
		}
		if VerbosityLevel > 1 {
			message := fmt.Sprintf("Reading event %d with ID %d", f.EvtCount, src.Event)
			logger.Info(message, "fileReader")
		}
		return src, nil
	}
}
