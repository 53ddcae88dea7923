// Package samples implements the sample-subset include/exclude surface
// and sex-file loading described in spec.md §6.
package samples

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ParseSubset resolves a comma-separated include/exclude sample
// expression against the known sample list. A leading "^" excludes the
// listed names instead of including them. A leading "@" (after any "^")
// reads the comma/newline-separated list from a file instead of the
// expression itself. Unknown names are a hard error unless force is true,
// in which case they are silently ignored.
func ParseSubset(expr string, allSamples []string, force bool) ([]string, error) {
	if expr == "" {
		return append([]string(nil), allSamples...), nil
	}

	exclude := false
	if strings.HasPrefix(expr, "^") {
		exclude = true
		expr = expr[1:]
	}

	var names []string
	if strings.HasPrefix(expr, "@") {
		listed, err := readListFile(expr[1:])
		if err != nil {
			return nil, fmt.Errorf("config error: %w", err)
		}
		names = listed
	} else {
		for _, n := range strings.Split(expr, ",") {
			n = strings.TrimSpace(n)
			if n != "" {
				names = append(names, n)
			}
		}
	}

	known := make(map[string]bool, len(allSamples))
	for _, s := range allSamples {
		known[s] = true
	}
	if !force {
		for _, n := range names {
			if !known[n] {
				return nil, fmt.Errorf("config error: unknown sample %q (use force-samples to ignore)", n)
			}
		}
	}

	if exclude {
		excluded := make(map[string]bool, len(names))
		for _, n := range names {
			excluded[n] = true
		}
		var result []string
		for _, s := range allSamples {
			if !excluded[s] {
				result = append(result, s)
			}
		}
		return result, nil
	}

	var result []string
	for _, n := range names {
		if known[n] {
			result = append(result, n)
		}
	}
	return result, nil
}

func readListFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample list %s: %w", path, err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		for _, tok := range strings.Split(scanner.Text(), ",") {
			tok = strings.TrimSpace(tok)
			if tok != "" {
				names = append(names, tok)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading sample list %s: %w", path, err)
	}
	return names, nil
}
