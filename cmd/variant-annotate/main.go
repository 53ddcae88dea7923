// Command variant-annotate is the CLI front end for the streaming
// per-site annotation pipeline, restructured from the teacher's
// hand-rolled switch dispatch into a small cobra command tree.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"variant_annotate_go/internal/allele"
	"variant_annotate_go/internal/annotate"
	"variant_annotate_go/internal/benchmarkrun"
	"variant_annotate_go/internal/cliio"
	"variant_annotate_go/internal/contextscan"
	"variant_annotate_go/internal/record"
	"variant_annotate_go/internal/runconfig"
	"variant_annotate_go/internal/samples"
)

var (
	flagInput      string
	flagOutput     string
	flagOptions    string
	flagConfigYAML string
	flagSubset     string
	flagForce      bool
	flagBenchmark  bool
)

func main() {
	root := &cobra.Command{
		Use:   "variant-annotate",
		Short: "Streaming per-site statistical annotation for genotype/AD/BAF/LRR variant records",
	}

	annotateCmd := &cobra.Command{
		Use:   "annotate",
		Short: "Annotate a variant stream",
		RunE:  runAnnotate,
	}
	annotateCmd.Flags().StringVar(&flagInput, "input", "-", "input TSV variant stream (.gz transparently decompressed; - for stdin)")
	annotateCmd.Flags().StringVar(&flagOutput, "output", "-", "output TSV annotation stream (- for stdout)")
	annotateCmd.Flags().StringVar(&flagOptions, "options", "", "comma-joined knob string, e.g. phase,ad_het,fasta=ref.fa,gc_window=100")
	annotateCmd.Flags().StringVar(&flagConfigYAML, "config", "", "YAML config file overlaying --options")
	annotateCmd.Flags().StringVar(&flagSubset, "samples", "", "sample subset expression, e.g. ^SAMPLE3,SAMPLE7 or @samples.txt")
	annotateCmd.Flags().BoolVar(&flagForce, "force-samples", false, "ignore unknown names in --samples instead of failing")
	annotateCmd.Flags().BoolVar(&flagBenchmark, "benchmark", false, "wrap the run with timing/memory reporting")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print component version numbers",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("variant-annotate %s (numeric %s, betabinom %s)\n",
				runconfig.ModuleVersion, runconfig.NumericVersion, runconfig.BetaBinomVersion)
		},
	}

	root.AddCommand(annotateCmd, versionCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	if flagBenchmark {
		var runErr error
		benchmarkrun.Run("variant-annotate annotate", func() {
			runErr = doAnnotate()
		})
		return runErr
	}
	return doAnnotate()
}

func doAnnotate() error {
	cfg, err := runconfig.ParseOptions(flagOptions)
	if err != nil {
		return err
	}
	if flagConfigYAML != "" {
		if err := runconfig.LoadYAMLOverlay(flagConfigYAML, &cfg); err != nil {
			return err
		}
	}

	in, err := openInput(flagInput)
	if err != nil {
		return err
	}
	defer in.Close()

	rdr, err := cliio.NewReader(in)
	if err != nil {
		return err
	}

	if err := cfg.ValidateAgainstSchema(rdr.Header.Fields); err != nil {
		return err
	}

	subset, err := samples.ParseSubset(flagSubset, rdr.Header.Samples, flagForce)
	if err != nil {
		return err
	}
	keep := make(map[string]bool, len(subset))
	for _, s := range subset {
		keep[s] = true
	}
	var keepIdx []int
	for i, s := range rdr.Header.Samples {
		if keep[s] {
			keepIdx = append(keepIdx, i)
		}
	}

	var sexVec []record.Sex
	if cfg.SexFilePath != "" {
		full, err := samples.LoadSexFile(cfg.SexFilePath, rdr.Header.Samples)
		if err != nil {
			return err
		}
		sexVec = full
	}

	var ref *contextscan.IndexedFasta
	if cfg.ReferencePath != "" {
		ref, err = contextscan.OpenIndexedFasta(cfg.ReferencePath)
		if err != nil {
			return err
		}
		defer ref.Close()
	}

	out, err := openOutput(flagOutput)
	if err != nil {
		return err
	}
	defer out.Close()

	w := cliio.NewAnnotationWriter(out)
	agg := record.NewAggregator()
	battery := annotate.NewBattery()

	opts := annotate.Options{
		SexVectorPresent: cfg.SexFilePath != "",
		Phase:            cfg.Phase,
		UseF:             cfg.SignField != "",
		ADHet:            cfg.ADHet,
	}

	for {
		rec, err := rdr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		sub := subsetRecord(rec, keepIdx, sexVec)

		var extra cliio.Extra

		if cfg.InferAlleles || cfg.CorBAFLRR {
			alleleA, alleleB := allele.Infer(sub)
			extra.HasAlleles = true
			extra.AlleleA, extra.AlleleB = alleleA, alleleB
			if cfg.CorBAFLRR {
				if cor, ok := annotate.CorrelateBAFLRR(sub, alleleA, alleleB); ok {
					extra.HasCorrelation = true
					extra.Correlation = cor
				} else {
					fmt.Fprintf(os.Stderr, "warning: %s:%d: BAF/LRR correlation skipped, alleles undetermined\n", sub.Chrom, sub.Pos)
				}
			}
		}

		if ref != nil {
			res, err := contextscan.Scan(ref, sub.Chrom, sub.Pos-1, len(sub.Ref), cfg.Window)
			if err != nil {
				fmt.Fprintln(os.Stderr, "warning:", err)
			} else {
				extra.HasContext = true
				extra.GC, extra.CpG = res.GC, res.CpG
			}
		}

		agg.Aggregate(sub)
		ann := battery.Evaluate(agg.Counts, agg.BAFByPhase(), opts)
		if cfg.DropGenotypes {
			sub.Samples = nil
		}
		if err := w.Write(sub, ann, extra); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	return w.Flush()
}

// subsetRecord narrows rec.Samples to keepIdx and attaches the per-sample
// sex vector (restricted to the same subset), without mutating the
// reader's original slice backing array.
func subsetRecord(rec *record.Record, keepIdx []int, sexVec []record.Sex) *record.Record {
	if keepIdx == nil && sexVec == nil {
		return rec
	}
	out := &record.Record{Chrom: rec.Chrom, Pos: rec.Pos, Ref: rec.Ref, NAllele: rec.NAllele}
	if keepIdx == nil {
		out.Samples = append([]record.Sample(nil), rec.Samples...)
	} else {
		out.Samples = make([]record.Sample, len(keepIdx))
		for j, i := range keepIdx {
			out.Samples[j] = rec.Samples[i]
		}
	}
	if sexVec != nil {
		for j := range out.Samples {
			idx := j
			if keepIdx != nil {
				idx = keepIdx[j]
			}
			if idx < len(sexVec) {
				out.Samples[j].Sex = sexVec[idx]
			}
		}
	}
	return out
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	return cliio.OpenMaybeGzip(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output %s: %w", path, err)
	}
	return f, nil
}
