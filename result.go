package main

// Result is the outcome of converting one input. It is a success when Err is
// nil, in which case OutputPath is set.
type Result struct {
	InputPath      string
	OutputPath     string
	Err            error
	OriginalSize   int64
	CompressedSize int64
}

func (r Result) Succeeded() bool {
	return r.Err == nil
}

// ErrorMessage is the human-readable failure reason, empty on success.
func (r Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Summary aggregates the results of one run in input order.
type Summary struct {
	InputFolder string
	OutputDir   string
	Total       int
	Succeeded   int
	Failed      int
	Results     []Result
	// NothingToDo is set when discovery found no matching files.
	NothingToDo bool
	// Interrupted is set when the run stopped before every input was processed.
	Interrupted bool

	TotalOriginalSize   int64
	TotalCompressedSize int64
}

func (s *Summary) add(r Result) {
	s.Results = append(s.Results, r)
	if r.Succeeded() {
		s.Succeeded++
		s.TotalOriginalSize += r.OriginalSize
		s.TotalCompressedSize += r.CompressedSize
	} else {
		s.Failed++
	}
}

// Processed is the number of inputs that produced a result.
func (s *Summary) Processed() int {
	return s.Succeeded + s.Failed
}

// CompressionRatio is compressed/original bytes over successful files, in percent.
func (s *Summary) CompressionRatio() float64 {
	if s.TotalOriginalSize == 0 {
		return 0
	}
	return float64(s.TotalCompressedSize) / float64(s.TotalOriginalSize) * 100
}

// SpaceSaved is positive when outputs are smaller than their inputs.
func (s *Summary) SpaceSaved() int64 {
	return s.TotalOriginalSize - s.TotalCompressedSize
}
