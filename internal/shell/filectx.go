package shell

import (
	"fmt"

	"github.com/KiranEiden/amrplot/internal/dataset"
)

// FileContext caches the loaded dataset and its derived metadata so repeated
// commands against the same path skip the reload.
type FileContext struct {
	Path         string
	Fields       []string
	DS           *dataset.Dataset
	Axisymmetric bool
	Dim          int
}

func NewFileContext() *FileContext {
	return &FileContext{Dim: -1}
}

// Load opens path unless it is already the loaded file. A failed load leaves
// the context reporting not-loaded; the previous handle is closed only when a
// new one replaces it.
func (f *FileContext) Load(path string) error {
	path = stripQuotes(path)
	if path == f.Path && f.DS != nil {
		return nil
	}

	ds, err := dataset.Load(path)
	if err != nil {
		f.Path = ""
		return fmt.Errorf("file unable to be opened: %v", err)
	}

	if f.DS != nil {
		f.DS.Close()
	}
	f.Path = path
	f.DS = ds
	f.Fields = ds.Fields
	f.Axisymmetric = ds.Axisymmetric()
	f.Dim = ds.Dim()
	return nil
}

// IsLoaded reports whether a dataset is currently available.
func (f *FileContext) IsLoaded() bool {
	return f.Path != "" && f.DS != nil
}
