package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"
)

const (
	SCENARIO_FILE_PATTERN = "**/*.{yaml,yml}"
	GLOB_META_CHARS       = "*?[{"
)

// expandScenarioPaths replaces the directories and glob patterns in args with the scenario files they
// contain or match. The paths resulting from a single argument are sorted in natural order.
func expandScenarioPaths(args []string) ([]string, error) {
	var paths []string

	for _, arg := range args {
		var matches []string

		switch info, err := os.Stat(arg); {
		case err == nil && info.IsDir():
			relativePaths, err := doublestar.Glob(os.DirFS(arg), SCENARIO_FILE_PATTERN)
			if err != nil {
				return nil, err
			}
			for _, relativePath := range relativePaths {
				matches = append(matches, filepath.Join(arg, filepath.FromSlash(relativePath)))
			}
		case err != nil && strings.ContainsAny(arg, GLOB_META_CHARS):
			matches, err = doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
			}
		default:
			paths = append(paths, arg)
			continue
		}

		if len(matches) == 0 {
			return nil, fmt.Errorf("no scenario file found in or matching %q", arg)
		}

		sort.Slice(matches, func(i, j int) bool {
			return natural.Less(matches[i], matches[j])
		})
		paths = append(paths, matches...)
	}

	return paths, nil
}
