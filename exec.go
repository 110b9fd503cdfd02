package imalgo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/esimov/imalgo/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// SourceExtensions lists the file extensions picked up when walking a directory.
var SourceExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

// Ops describes the source and destination of an Execute run.
// Src and Dst may be a file, a directory or PipeName; Src may also be a URL.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the outcome of processing one source file.
type result struct {
	path string
	err  error
}

// Execute processes the source described by op. Directories are walked
// recursively and their images processed concurrently; a failing file
// does not stop the others and all failures are returned joined.
func (p *Processor) Execute(ctx context.Context, op *Ops) error {
	now := time.Now()

	src := op.Src
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadImage(ctx, src)
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		defer os.Remove(f.Name())
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		src = f.Name()
	}

	var (
		fs  os.FileInfo
		err error
	)
	if src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}
	if fs.IsDir() && op.Dst == op.PipeName {
		return errors.New("a directory source needs a destination directory")
	}

	if p.Spinner != nil {
		p.Spinner.Start()
	}

	switch mode := fs.Mode(); {
	case mode.IsDir():
		err = p.executeDir(ctx, op, src)
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0 || src == op.PipeName:
		err = p.executeFile(op, src, op.Dst)
	default:
		err = fmt.Errorf("unsupported source %q", src)
	}

	if p.Spinner != nil {
		if err != nil {
			p.Spinner.StopMsg = utils.StatusLine("processing failed", "✘\n", utils.ErrorMessage)
		} else {
			p.Spinner.StopMsg = utils.StatusLine("done in", utils.FormatTime(time.Since(now))+" ✔\n", utils.SuccessMessage)
		}
		p.Spinner.Stop()
	}
	return err
}

func (p *Processor) executeFile(op *Ops, src, dst string) error {
	if dst != op.PipeName {
		if _, err := FormatFromPath(dst); err != nil && p.Format == "" {
			return err
		}
	}
	err := op.process(p, src, dst)
	logStatus(src, dst, err)
	return err
}

func (p *Processor) executeDir(ctx context.Context, op *Ops, src string) error {
	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return fmt.Errorf("unable to create the destination directory: %w", err)
	}

	workers := op.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan result)
	paths, errc := walkDir(ctx, src, SourceExtensions)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(ctx, p, src, ch, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var errs []error
	for res := range ch {
		if res.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.path, res.err))
		}
	}
	if err := <-errc; err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// consumer reads the path names from the paths channel and runs the processor over each of them.
func (op *Ops) consumer(
	ctx context.Context,
	p *Processor,
	root string,
	res chan<- result,
	paths <-chan string,
) {
	for src := range paths {
		dst := destPath(root, op.Dst, src, p.Format)
		err := op.process(p, src, dst)
		logStatus(src, dst, err)

		select {
		case <-ctx.Done():
			return
		case res <- result{path: src, err: err}:
		}
	}
}

// destPath mirrors src under dstDir. Sources in a format that cannot be
// encoded are written as PNG.
func destPath(root, dstDir, src, format string) string {
	rel, err := filepath.Rel(root, src)
	if err != nil {
		rel = filepath.Base(src)
	}
	dst := filepath.Join(dstDir, rel)
	if _, err := FormatFromPath(dst); err != nil && format == "" {
		dst = strings.TrimSuffix(dst, filepath.Ext(dst)) + ".png"
	}
	return dst
}

// process runs the processor over a single source and destination.
func (op *Ops) process(p *Processor, in, out string) (err error) {
	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return err
	}

	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if cerr := f.Close(); cerr != nil {
				slog.Warn("could not close the source file", "file", in, "error", cerr)
			}
		}
	}()

	f, isFile := dst.(*os.File)
	isFile = isFile && f != os.Stdout
	if isFile {
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
			// remove the generated image file in case of an error
			if err != nil {
				os.Remove(f.Name())
			}
		}()
	}

	return p.Process(src, dst)
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
			return nil, nil, fmt.Errorf("unable to create the destination directory: %w", err)
		}
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return src, dst, nil
}

func logStatus(src, dst string, err error) {
	logger := slog.Default().With("file", src)
	if err != nil {
		logger.Error("processing failed", "error", err)
		return
	}
	logger.Info("image saved", "dst", dst)
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each supported file to a new channel.
// It finishes when ctx is cancelled.
func walkDir(ctx context.Context, src string, exts []string) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if !slices.Contains(exts, strings.ToLower(filepath.Ext(d.Name()))) {
				return nil
			}

			select {
			case <-ctx.Done():
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}
