package lox

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/msg"
	"golang.org/x/sync/errgroup"
)

// CheckOptions are the options passed to the check subcommand.
type CheckOptions struct {
	// Debug enables debug logging.
	Debug bool
}

// Check implements the check subcommand, statically checking Lox files
// without running them.
func (l Lox) Check(ctx context.Context, path string, handler syntax.ErrorHandler, options CheckOptions) error {
	logger := l.logger.WithPrefix("check").With("path", path)
	logger.Debug("Checking path")

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("could not get path info: %w", err)
	}

	var paths []string

	if info.IsDir() {
		logger.Debug("Path is a directory")

		err = filepath.WalkDir(path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if filepath.Ext(path) == ".lox" {
				paths = append(paths, path)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("could not walk %s: %w", path, err)
		}
	} else {
		logger.Debug("Path is a file")

		paths = []string{path}
	}

	logger.Debug("Checking lox files given by path", "number", len(paths))

	group := errgroup.Group{}

	for _, path := range paths {
		group.Go(func() error {
			return l.checkFile(path, handler)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	for _, path := range paths {
		msg.Fsuccess(l.stdout, "%s is valid", path)
	}

	return nil
}

// checkFile runs the static pipeline on a single file.
func (l Lox) checkFile(path string, handler syntax.ErrorHandler) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read file: %w", err)
	}

	// We don't actually care about the tree or the bindings, just that the
	// file is clean
	if _, _, err := compile(path, src, handler, false); err != nil {
		return fmt.Errorf("%s is invalid", path)
	}

	return nil
}
