package hww

import (
	"errors"
	"fmt"
)

// ErrStageOrder is raised (as a panic value) when an event field is read
// before the maker stage that owns it has run.
var ErrStageOrder = errors.New("event field read before its maker stage ran")

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

func (e *ErrOpenFile) Unwrap() error { return e.Err }

// ErrCreateGroup represents an error when creating a group.
type ErrCreateGroup struct {
	GroupName string
	Err       error
}

func (e *ErrCreateGroup) Error() string {
	return fmt.Sprintf("error creating group %q: %v", e.GroupName, e.Err)
}

func (e *ErrCreateGroup) Unwrap() error { return e.Err }

// ErrCreateTable represents an error when creating a table.
type ErrCreateTable struct {
	TableName string
	Err       error
}

func (e *ErrCreateTable) Error() string {
	return fmt.Sprintf("error creating table %q: %v", e.TableName, e.Err)
}

func (e *ErrCreateTable) Unwrap() error { return e.Err }

// ErrLoadModel represents an unreadable or malformed weight file.
type ErrLoadModel struct {
	Path string
	Err  error
}

func (e *ErrLoadModel) Error() string {
	return fmt.Sprintf("error loading weights %q: %v", e.Path, e.Err)
}

func (e *ErrLoadModel) Unwrap() error { return e.Err }

// ErrModelPaths is returned when a model is not configured with exactly
// NumCategories weight files.
type ErrModelPaths struct {
	Model string
	Got   int
}

func (e *ErrModelPaths) Error() string {
	return fmt.Sprintf("%s needs %d weight files, got %d", e.Model, NumCategories, e.Got)
}

// ErrHistogramBin is returned when a bin falls outside a declared histogram.
type ErrHistogramBin struct {
	Channel Channel
	Bin     int
	NBins   int
}

func (e *ErrHistogramBin) Error() string {
	return fmt.Sprintf("bin %d out of range for cutflow_%s (%d bins)", e.Bin, e.Channel, e.NBins)
}
