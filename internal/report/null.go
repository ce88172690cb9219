package report

import "github.com/vvka-141/pgload/pkg/pgload"

// NullReporter discards all progress events.
type NullReporter struct{}

func NewNullReporter() *NullReporter {
	return &NullReporter{}
}

func (NullReporter) FileLookup(int, pgload.Mapping, string) {}
func (NullReporter) FileDone(int, pgload.FileResult)        {}
func (NullReporter) RunComplete(*pgload.Report)             {}

var _ pgload.Reporter = NullReporter{}
