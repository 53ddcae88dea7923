package samples

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"variant_annotate_go/internal/record"
)

// LoadSexFile reads a text sex map, one sample per line, "name\tM|F|U"
// (or whitespace-separated). Samples named in sampleOrder but absent from
// the file default to record.SexUnknown.
func LoadSexFile(path string, sampleOrder []string) ([]record.Sex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sex file %s: %w", path, err)
	}
	defer f.Close()

	bySample := make(map[string]record.Sex)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		bySample[fields[0]] = parseSexCode(fields[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading sex file %s: %w", path, err)
	}

	out := make([]record.Sex, len(sampleOrder))
	for i, name := range sampleOrder {
		if sx, ok := bySample[name]; ok {
			out[i] = sx
		} else {
			out[i] = record.SexUnknown
		}
	}
	return out, nil
}

func parseSexCode(code string) record.Sex {
	switch strings.ToUpper(code) {
	case "M":
		return record.SexMale
	case "F":
		return record.SexFemale
	default:
		return record.SexUnknown
	}
}
