package hww

import (
	"errors"
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// HistogramWriter keeps the cutflow histograms in memory and writes them as
// one table per channel, cutflow_<channel>, when closed.
type HistogramWriter struct {
	*HistogramSet
	File             *hdf5.File
	Filename         string
	Group            *hdf5.Group
	CompressionLevel int
}

func NewHistogramWriter(filename string, compressionLevel int) (*HistogramWriter, error) {
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Creating file: %s", filename), "hdf5writer")
	}
	file, err := openFile(filename)
	if err != nil {
		return nil, err
	}
	group, err := createGroup(file, HistogramFolder)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &HistogramWriter{
		HistogramSet:     NewHistogramSet(),
		File:             file,
		Filename:         filename,
		Group:            group,
		CompressionLevel: compressionLevel,
	}, nil
}

func histogramRows(hist *Histogram) []CutflowBinHDF5 {
	// The array MUST be allocated at creation, HDF5 reads it in place
	rows := make([]CutflowBinHDF5, len(hist.Values))
	for i := range hist.Values {
		rows[i] = CutflowBinHDF5{
			bin:     int32(i),
			label:   convertToHdf5String(hist.Labels[i]),
			content: hist.Values[i],
		}
	}
	return rows
}

func (w *HistogramWriter) writeHistograms() error {
	for _, ch := range Channels {
		hist, ok := w.Histograms[ch]
		if !ok {
			continue
		}
		name := fmt.Sprintf("cutflow_%s", ch)
		table, err := createTable(w.Group, name, CutflowBinHDF5{}, w.CompressionLevel)
		if err != nil {
			return err
		}
		rows := histogramRows(hist)
		err = writeArrayToTable(table, &rows, 0)
		closeErr := table.Close()
		if err != nil {
			return fmt.Errorf("error writing %s: %w", name, err)
		}
		if closeErr != nil {
			return fmt.Errorf("error closing %s: %w", name, closeErr)
		}
	}
	return nil
}

// Close writes the histograms and closes the file.
func (w *HistogramWriter) Close() error {
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Closing file %s", w.Filename), "hdf5writer")
	}
	var errs []error

	if err := w.writeHistograms(); err != nil {
		errs = append(errs, err)
	}
	if err := w.Group.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing %s group: %w", HistogramFolder, err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
