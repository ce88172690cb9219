package pgload

// Reporter receives per-file progress from a load run.
// Calls arrive sequentially from the goroutine running the load.
type Reporter interface {
	// FileLookup is called before the loader checks for a file.
	FileLookup(index int, m Mapping, path string)

	// FileDone is called once the outcome for a file is known.
	FileDone(index int, result FileResult)

	// RunComplete is called after the transaction is finished, with the final report.
	// Results whose status changed at commit time (rolled back) are reflected here.
	RunComplete(report *Report)
}
