package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// QueueRatio sizes the job queue relative to the worker count.
const QueueRatio = 3

type Processor struct {
	Encoder         Encoder
	Background      color.Color
	NumWorkers      int
	QueueSize       int
	Verify          bool
	VerifyThreshold int
	Reporter        Reporter
}

func NewProcessor(cfg *Config, reporter Reporter) (*Processor, error) {
	enc, err := NewEncoder(cfg)
	if err != nil {
		return nil, err
	}
	if reporter == nil {
		reporter = nopReporter{}
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &Processor{
		Encoder:         enc,
		Background:      cfg.BackgroundColor(),
		NumWorkers:      workers,
		QueueSize:       workers * QueueRatio,
		Verify:          cfg.Verify,
		VerifyThreshold: cfg.VerifyThreshold,
		Reporter:        reporter,
	}, nil
}

// Run converts every supported image in inputFolder. A missing input folder
// or an output folder that cannot be created is returned as an error with a
// nil summary. Per-file failures are recorded in the summary only. When ctx
// is cancelled the partial summary is returned together with ErrInterrupted.
func (p *Processor) Run(ctx context.Context, inputFolder, explicitOutput string) (*Summary, error) {
	files, err := DiscoverInputs(inputFolder)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		InputFolder: inputFolder,
		OutputDir:   OutputDirFor(inputFolder, explicitOutput),
		Total:       len(files),
	}

	if len(files) == 0 {
		summary.NothingToDo = true
		p.Reporter.Begin(summary)
		p.Reporter.End(summary)
		return summary, nil
	}

	outputDir, err := ResolveOutputDir(inputFolder, explicitOutput)
	if err != nil {
		return nil, err
	}
	summary.OutputDir = outputDir

	p.Reporter.Begin(summary)

	collisions := findCollisions(files, outputDir, p.Encoder.Ext())

	if p.NumWorkers > 1 && len(files) > 1 {
		p.processFilesParallel(ctx, files, outputDir, collisions, summary)
	} else {
		p.processFilesSequential(ctx, files, outputDir, collisions, summary)
	}

	if summary.Processed() < summary.Total && ctx.Err() != nil {
		summary.Interrupted = true
	}

	p.Reporter.End(summary)

	if summary.Interrupted {
		return summary, fmt.Errorf("%w after %d of %d files: %v",
			ErrInterrupted, summary.Processed(), summary.Total, ctx.Err())
	}
	return summary, nil
}

// findCollisions maps the index of every input whose output path was already
// claimed by an earlier input to that earlier input's path.
func findCollisions(files []string, outputDir, ext string) map[int]string {
	claimed := make(map[string]string, len(files))
	collisions := make(map[int]string)
	for i, f := range files {
		out := OutputPath(f, outputDir, ext)
		if prev, ok := claimed[out]; ok {
			collisions[i] = prev
		}
		claimed[out] = f
	}
	return collisions
}

func (p *Processor) processFilesSequential(ctx context.Context, files []string, outputDir string,
	collisions map[int]string, summary *Summary) {
	for i, file := range files {
		if ctx.Err() != nil {
			return
		}
		r := p.ConvertOne(file, outputDir)
		summary.add(r)
		p.notify(i, r, collisions)
	}
}

func (p *Processor) processFilesParallel(ctx context.Context, files []string, outputDir string,
	collisions map[int]string, summary *Summary) {
	queueSize := p.QueueSize
	if queueSize > len(files) {
		queueSize = len(files)
	}

	jobs := make(chan int, queueSize)
	results := make([]*Result, len(files))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for w := 0; w < p.NumWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				r := p.ConvertOne(files[i], outputDir)

				mu.Lock()
				results[i] = &r
				p.notify(i, r, collisions)
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()

	wg.Wait()

	for _, r := range results {
		if r != nil {
			summary.add(*r)
		}
	}
}

func (p *Processor) notify(index int, r Result, collisions map[int]string) {
	if prev, ok := collisions[index]; ok && r.Succeeded() {
		p.Reporter.Overwrote(r, prev)
	}
	p.Reporter.FileDone(r)
}

// ConvertOne converts a single input into outputDir. It never returns an
// error directly: every failure, including a panic inside a codec, is carried
// in the returned Result.
func (p *Processor) ConvertOne(inputPath, outputDir string) (res Result) {
	res.InputPath = inputPath
	outputPath := OutputPath(inputPath, outputDir, p.Encoder.Ext())

	defer func() {
		if rec := recover(); rec != nil {
			res.OutputPath = ""
			res.Err = fmt.Errorf("unexpected failure: %v", rec)
		}
	}()

	origSize, compSize, err := p.processFileWithStats(inputPath, outputPath)
	res.OriginalSize = origSize
	res.CompressedSize = compSize
	if err != nil {
		res.Err = err
		return res
	}
	res.OutputPath = outputPath
	return res
}

func (p *Processor) processFileWithStats(inputPath, outputPath string) (int64, int64, error) {
	fileInfo, err := os.Stat(inputPath)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: failed to get file info: %v", ErrIO, err)
	}
	originalSize := fileInfo.Size()

	f, err := os.Open(inputPath)
	if err != nil {
		return originalSize, 0, fmt.Errorf("%w: error opening file: %v", ErrIO, err)
	}
	src, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return originalSize, 0, fmt.Errorf("%w: cannot identify image: %v", ErrDecode, err)
	}

	flat := Flatten(src, p.Background)

	outputDir := filepath.Dir(outputPath)
	stem := strings.TrimSuffix(filepath.Base(outputPath), filepath.Ext(outputPath))
	tempFile, err := os.CreateTemp(outputDir, "."+stem+"-*.tmp")
	if err != nil {
		return originalSize, 0, fmt.Errorf("%w: error creating temporary file: %v", ErrIO, err)
	}
	tempPath := tempFile.Name()

	committed := false
	defer func() {
		if !committed {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if err := p.Encoder.Encode(tempFile, flat); err != nil {
		return originalSize, 0, fmt.Errorf("%w: error encoding %s: %v", ErrIO, p.Encoder.Ext(), err)
	}
	if err := tempFile.Close(); err != nil {
		return originalSize, 0, fmt.Errorf("%w: error writing output: %v", ErrIO, err)
	}

	compressedInfo, err := os.Stat(tempPath)
	if err != nil {
		return originalSize, 0, fmt.Errorf("%w: failed to get compressed file info: %v", ErrIO, err)
	}
	compressedSize := compressedInfo.Size()

	if p.Verify {
		if err := verifyOutput(p.Encoder, tempPath, flat, p.VerifyThreshold); err != nil {
			return originalSize, compressedSize, err
		}
	}

	if err := os.Rename(tempPath, outputPath); err != nil {
		return originalSize, compressedSize, fmt.Errorf("%w: error moving output into place: %v", ErrIO, err)
	}
	committed = true

	return originalSize, compressedSize, nil
}
