// Package runconfig holds the immutable run configuration (spec.md §3)
// and its comma-joined-option parsing, grounded on the teacher's
// config.ParseArgs/splitOption convention, generalized to the annotator's
// knob table (spec.md §6).
package runconfig

import (
	"fmt"
	"strconv"
	"strings"
)

const defaultWindow = 200

// RunConfig is the immutable run configuration built at startup.
type RunConfig struct {
	Window        int
	Phase         bool
	ADHet         bool
	InferAlleles  bool
	CorBAFLRR     bool
	DropGenotypes bool
	SignField     string // empty if "balance" was not configured
	ReferencePath string
	SexFilePath   string
}

// Default returns a RunConfig with every knob off and the default GC
// window half-width.
func Default() RunConfig {
	return RunConfig{Window: defaultWindow}
}

// splitOption divides "key=value" into its two halves, matching the
// teacher's config.splitOption; a bare key with no "=" yields an empty
// value (used by boolean flags like "phase").
func splitOption(arg string) (string, string) {
	for i, ch := range arg {
		if ch == '=' {
			return arg[:i], arg[i+1:]
		}
	}
	return arg, ""
}

// ParseOptions parses a comma-joined "key=value,key,..." option string
// into a RunConfig, per the knob table in spec.md §6.
func ParseOptions(s string) (RunConfig, error) {
	cfg := Default()
	if strings.TrimSpace(s) == "" {
		return cfg, nil
	}

	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		key, val := splitOption(tok)
		switch key {
		case "balance":
			if val == "" {
				return cfg, &ConfigError{Msg: "balance requires a format field name, e.g. balance=FIELD"}
			}
			cfg.SignField = val
		case "phase":
			cfg.Phase = true
		case "ad_het":
			cfg.ADHet = true
		case "sex":
			if val == "" {
				return cfg, &ConfigError{Msg: "sex requires a file path, e.g. sex=FILE"}
			}
			cfg.SexFilePath = val
		case "fasta":
			if val == "" {
				return cfg, &ConfigError{Msg: "fasta requires a file path, e.g. fasta=FILE"}
			}
			cfg.ReferencePath = val
		case "gc_window":
			w, err := strconv.Atoi(val)
			if err != nil || w <= 0 {
				return cfg, &ConfigError{Msg: fmt.Sprintf("gc_window must be a positive integer, got %q", val)}
			}
			cfg.Window = w
		case "infer_baf_alleles":
			cfg.InferAlleles = true
		case "cor_baf_lrr":
			cfg.CorBAFLRR = true
		case "drop_genotypes":
			cfg.DropGenotypes = true
		default:
			return cfg, &ConfigError{Msg: fmt.Sprintf("unknown option %q", key)}
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks invariants that don't depend on the input header schema.
func (c RunConfig) Validate() error {
	if c.Window <= 0 {
		return &ConfigError{Msg: "gc_window must be > 0"}
	}
	return nil
}

// HeaderFields records which prerequisite per-sample fields the input
// header actually carries, for schema-dependent validation.
type HeaderFields struct {
	HasGT, HasAD, HasBAF, HasLRR bool
	HasF                         bool // only meaningful when SignField != ""
}

// ValidateAgainstSchema checks a RunConfig's requested annotations against
// the fields the input actually provides. cor_baf_lrr without BAF or LRR
// is classified as a ConfigError per spec.md §7's own example; other
// missing prerequisites are SchemaErrors.
func (c RunConfig) ValidateAgainstSchema(h HeaderFields) error {
	if !h.HasGT {
		return &SchemaError{Field: "GT", Reason: "GT is required for every annotation"}
	}
	if c.CorBAFLRR && (!h.HasBAF || !h.HasLRR) {
		return &ConfigError{Msg: "cor_baf_lrr requires both BAF and LRR fields"}
	}
	if c.InferAlleles && !h.HasBAF {
		return &SchemaError{Field: "BAF", Reason: "infer_baf_alleles requires BAF"}
	}
	if c.ADHet && !h.HasAD {
		return &SchemaError{Field: "AD", Reason: "ad_het requires AD"}
	}
	if c.SignField != "" && !h.HasF {
		return &SchemaError{Field: c.SignField, Reason: "balance requires the configured format field"}
	}
	return nil
}
