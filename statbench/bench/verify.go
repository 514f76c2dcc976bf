package bench

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ZanzyTHEbar/statbench/statbench/filesystem/stat"
	"github.com/ZanzyTHEbar/statbench/statbench/metadata"
)

// ErrInconsistent is returned by Verify when a provider disagrees with the
// expected tree or with another provider.
var ErrInconsistent = errors.New("providers disagree")

// Expectation describes what every provider must observe on the fixture.
type Expectation struct {
	Dirs     int   // directories below the walk root
	Files    int   // regular files below the walk root
	FileSize int64 // size of the stat target file
}

// Verify stats every target and walks the root once per provider, checking the
// results against want and against each other. The stat targets are expected to
// be a directory, a regular file and a missing path, in that order.
func Verify(providers []stat.Provider, targets Targets, want Expectation) error {
	if len(targets.Stat) != 3 {
		return fmt.Errorf("expected 3 stat targets, got %d", len(targets.Stat))
	}
	wantKinds := []metadata.Kind{metadata.Directory, metadata.RegularFile, metadata.Missing}

	var (
		errs      []error
		reference []string
		refName   string
	)

	for _, p := range providers {
		for i, target := range targets.Stat {
			rec, err := p.Stat(target)
			if err != nil {
				return fmt.Errorf("%s: stat %s: %w", p.Name(), target, err)
			}
			if rec.Kind() != wantKinds[i] {
				errs = append(errs, fmt.Errorf("%w: %s reports %s for %s, want %s", ErrInconsistent, p.Name(), rec.Kind(), target, wantKinds[i]))
			}
			if rec.Kind() == metadata.RegularFile && rec.Size() != want.FileSize {
				errs = append(errs, fmt.Errorf("%w: %s reports length %d for %s, want %d", ErrInconsistent, p.Name(), rec.Size(), target, want.FileSize))
			}
		}

		records, err := p.Walk(targets.WalkRoot, nil)
		if err != nil {
			return fmt.Errorf("%s: walk %s: %w", p.Name(), targets.WalkRoot, err)
		}
		dirs, files := metadata.Counts(records)
		if dirs != want.Dirs || files != want.Files {
			errs = append(errs, fmt.Errorf("%w: %s walked %d dirs and %d files, want %d and %d", ErrInconsistent, p.Name(), dirs, files, want.Dirs, want.Files))
		}

		// records carry no path, so compare them as a sorted multiset
		seen := make([]string, len(records))
		for i, rec := range records {
			seen[i] = rec.String()
		}
		slices.Sort(seen)
		if reference == nil {
			reference, refName = seen, p.Name()
		} else if !slices.Equal(reference, seen) {
			errs = append(errs, fmt.Errorf("%w: walk records of %s differ from %s", ErrInconsistent, p.Name(), refName))
		}
	}

	return errors.Join(errs...)
}
