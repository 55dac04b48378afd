package pgmcreator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const renderWorkers = 10

// Pattern names may contain anything, keep the output inside the directory
func outputFile(dir, name string) string {
	return filepath.Join(dir, strings.ReplaceAll(name, string(os.PathSeparator), "_")+".pgm")
}

func (c *Creator) findPatterns(ctx context.Context, dir string) (<-chan string, <-chan error, error) {
	names, err := c.db.Names()
	if err != nil {
		return nil, nil, err
	}

	// Two workers must never write the same file
	files := make(map[string]string, len(names))
	for _, name := range names {
		file := outputFile(dir, name)
		if other, ok := files[file]; ok {
			return nil, nil, fmt.Errorf("patterns %q and %q both render to %s", other, name, file)
		}
		files[file] = name
	}

	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, name := range names {
			select {
			case out <- name:
			case <-ctx.Done():
				errc <- errors.New("render cancelled")
				return
			}
		}
	}()
	return out, errc, nil
}

func (c *Creator) renderWorker(ctx context.Context, dir string, width, height int, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for name := range in {
			p, err := c.db.FindPattern(name)
			if err != nil {
				errc <- err
				return
			}

			// Removed since the names were listed
			if p == nil {
				c.logger.Printf("Pattern \"%s\" disappeared, skipping\n", name)
				continue
			}

			if err := c.Create(outputFile(dir, name), p, width, height); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// RenderAll writes every pattern in the database to dir as <name>.pgm, each
// rendered at width by height. The first error stops the render.
func (c *Creator) RenderAll(path string, width, height int) error {
	if c.db == nil {
		return errNoDB
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	names, errc, err := c.findPatterns(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < renderWorkers; i++ {
		errc, err := c.renderWorker(ctx, dir, width, height, names)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
