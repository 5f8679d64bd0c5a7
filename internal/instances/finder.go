// Package instances locates and decodes the JSON instance documents to be
// validated.
package instances

import (
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Stdin is the pseudo-path selecting standard input.
const Stdin = "-"

// Resolve expands instance arguments into concrete file paths. Arguments
// containing glob metacharacters are expanded as doublestar patterns ("**"
// crosses directory boundaries) and must match at least one file. Plain
// paths and Stdin pass through untouched, so a missing file surfaces later
// as an open error rather than silently matching nothing.
func Resolve(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if arg == Stdin || !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, &BadPatternError{Pattern: arg, Wrapped: err}
		}
		if len(matches) == 0 {
			return nil, &NoMatchError{Pattern: arg}
		}
		slices.Sort(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}
