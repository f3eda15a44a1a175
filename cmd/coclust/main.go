// Package main provides the coclust CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/hupe1980/coclust"
	"github.com/hupe1980/coclust/cluster"
	"github.com/hupe1980/coclust/contingency"
	"github.com/hupe1980/coclust/ensemble"
	"github.com/hupe1980/coclust/matrix"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "coclust",
		Short: "Pairwise distance matrices and evidence accumulation clustering",
		Long: `coclust builds pairwise distance matrices over text collections
(MinHash or exact Jaccard over word shingles), aggregates repeated k-medoids
runs into co-association matrices, and scores cluster labels against known
categories.

Input files are CSV with a header line and the columns id,text,type[,label].`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "YAML configuration file")
	pf.Int("workers", 0, "Worker pool size (0 = GOMAXPROCS)")
	pf.Int64("seed", 1, "Random seed")
	pf.Int("max-slices", 16, "Largest block grid side for parallel builds")
	pf.String("log-level", "warn", "Log level (debug, info, warn, error)")
	pf.String("log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "coclust v%s (%s)\n", version, commit)
		},
	})

	matrixCmd := &cobra.Command{
		Use:   "matrix [input.csv]",
		Short: "Compute the pairwise distance matrix of the input texts",
		Args:  cobra.ExactArgs(1),
		RunE:  runMatrix,
	}
	addMatrixFlags(matrixCmd)
	matrixCmd.Flags().StringP("out", "o", "-", "Output matrix CSV (- = stdout)")
	rootCmd.AddCommand(matrixCmd)

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [input.csv]",
		Short: "Aggregate repeated k-medoids runs into a consensus matrix",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnsemble,
	}
	addMatrixFlags(ensembleCmd)
	ef := ensembleCmd.Flags()
	ef.String("distances", "", "Precomputed distance matrix CSV (skips the matrix build)")
	ef.Int("iterations", 8, "Number of clustering runs")
	ef.Int("min-k", 5, "Smallest random cluster count (inclusive)")
	ef.Int("max-k", 10, "Largest random cluster count (exclusive)")
	ef.String("strategy", "co-association", "Accumulation strategy (co-association, ensemble-distance)")
	ef.Int("clusters", 0, "Cut the consensus into this many clusters and write labels")
	ef.StringP("out", "o", "-", "Output consensus matrix CSV (- = stdout)")
	ef.String("labels", "", "Output labelled CSV (requires --clusters)")
	rootCmd.AddCommand(ensembleCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "score [labelled.csv]...",
		Short: "Score cluster labels against the type column",
		Long: `Score greedily matches every type to its best cluster and prints the
agreement matrix and accuracy. With several files the matrices are averaged.
Files whose labels hold fewer than two clusters are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScore,
	})

	return rootCmd
}

func addMatrixFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("shingle", 2, "Shingle length in words")
	f.Bool("exact", false, "Exact Jaccard instead of the MinHash estimate")
	f.Int("sketch-size", 128, "MinHash permutations")
	f.Int64("memory-limit", 0, "Memory budget for in-flight blocks in bytes (0 = unlimited)")
	f.Bool("progress", false, "Report matrix build progress on stderr")
}

func loadConfig(cmd *cobra.Command) (Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyFlags(cmd.Flags())
	return cfg, nil
}

func newEngine(cmd *cobra.Command, cfg Config) (*coclust.Engine, error) {
	var progress func(done, total int)
	if on, _ := cmd.Flags().GetBool("progress"); on {
		w := cmd.ErrOrStderr()
		progress = func(done, total int) {
			fmt.Fprintf(w, "\rbuilding matrix: %3d%%", 100*done/max(total, 1))
			if done == total {
				fmt.Fprintln(w)
			}
		}
	}
	return cfg.Engine(progress)
}

func distances(ctx context.Context, eng *coclust.Engine, cfg Config, records []Record) (*matrix.Symmetric, error) {
	eng.Logger().WithN(len(records)).Info("building distance matrix",
		"shingle_length", cfg.ShingleLength,
		"exact", cfg.Exact,
	)
	if cfg.Exact {
		return eng.ExactTextDistances(ctx, texts(records), cfg.ShingleLength)
	}
	return eng.TextDistances(ctx, texts(records), cfg.ShingleLength)
}

func runMatrix(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := newEngine(cmd, cfg)
	if err != nil {
		return err
	}

	records, err := readRecordsFile(args[0])
	if err != nil {
		return err
	}

	d, err := distances(cmd.Context(), eng, cfg, records)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	return writeTo(outPath, cmd.OutOrStdout(), func(w io.Writer) error {
		return WriteMatrix(w, d)
	})
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	strategy, err := cfg.Ensemble.ResolveStrategy()
	if err != nil {
		return err
	}
	eng, err := newEngine(cmd, cfg)
	if err != nil {
		return err
	}

	records, err := readRecordsFile(args[0])
	if err != nil {
		return err
	}

	var d *matrix.Symmetric
	if path, _ := cmd.Flags().GetString("distances"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		d, err = ReadMatrix(f)
		f.Close()
		if err != nil {
			return err
		}
		if d.N() != len(records) {
			return fmt.Errorf("distance matrix has %d rows, input has %d records", d.N(), len(records))
		}
	} else if d, err = distances(ctx, eng, cfg, records); err != nil {
		return err
	}

	consensus, err := coclust.Ensemble[*matrix.Symmetric](ctx, eng, d, d.N(), cluster.NewKMedoids(0), func(o *ensemble.Options) {
		o.Iterations = cfg.Ensemble.Iterations
		o.MinK = cfg.Ensemble.MinK
		o.MaxK = cfg.Ensemble.MaxK
		o.Strategy = strategy
	})
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	if err := writeTo(outPath, cmd.OutOrStdout(), func(w io.Writer) error {
		return WriteMatrix(w, consensus)
	}); err != nil {
		return err
	}

	if cfg.Ensemble.Clusters <= 0 {
		return nil
	}
	return cutConsensus(cmd, eng, cfg, strategy, consensus, records)
}

// cutConsensus clusters the consensus matrix into cfg.Ensemble.Clusters
// groups, writes the labelled records and scores them when types are known.
func cutConsensus(cmd *cobra.Command, eng *coclust.Engine, cfg Config, strategy ensemble.Strategy, consensus *matrix.Symmetric, records []Record) error {
	dist := consensus
	if strategy == ensemble.CoAssociation {
		dist = consensus.Complement()
	}

	rng := rand.New(rand.NewSource(cfg.Seed)) // nolint gosec
	labels, err := cluster.NewKMedoids(0).Fit(cmd.Context(), dist, cfg.Ensemble.Clusters, rng)
	if err != nil {
		return err
	}

	labelled := make([]Record, len(records))
	for i, r := range records {
		r.Label = strconv.Itoa(labels[i])
		labelled[i] = r
	}

	if path, _ := cmd.Flags().GetString("labels"); path != "" {
		if err := writeTo(path, cmd.OutOrStdout(), func(w io.Writer) error {
			return WriteRecords(w, labelled)
		}); err != nil {
			return err
		}
	}

	if !hasTypes(records) {
		return nil
	}
	cats, ints, err := categoriesAndLabels(labelled)
	if err != nil {
		return err
	}
	res, err := eng.Evaluate(cats, ints)
	if errors.Is(err, coclust.ErrDegenerateAssignment) {
		fmt.Fprintln(cmd.ErrOrStderr(), "score skipped:", err)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "accuracy: %.3f\n", res.Accuracy())
	return nil
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := cfg.Engine(nil)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var (
		results    []*contingency.Result
		accuracies []float64
	)
	for _, path := range args {
		records, err := readRecordsFile(path)
		if err != nil {
			return err
		}
		cats, labels, err := categoriesAndLabels(records)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		res, err := eng.Evaluate(cats, labels)
		if errors.Is(err, coclust.ErrDegenerateAssignment) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: skipped: %v\n", path, err)
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		fmt.Fprintf(out, "%s: accuracy %.3f\n", path, res.Accuracy())
		results = append(results, res)
		accuracies = append(accuracies, res.Accuracy())
	}

	if len(results) == 0 {
		return errors.New("no file could be scored")
	}

	avg, err := contingency.Mean(results...)
	if err != nil {
		return err
	}
	printAgreement(out, results[0].Categories, avg)
	fmt.Fprintf(out, "mean accuracy: %.3f\n", stat.Mean(accuracies, nil))
	return nil
}

func printAgreement(w io.Writer, categories []string, m *mat.Dense) {
	fmt.Fprint(w, "\t")
	for _, c := range categories {
		fmt.Fprintf(w, "\t%s", c)
	}
	fmt.Fprintln(w)
	for i, c := range categories {
		fmt.Fprintf(w, "%s\t", c)
		for j := range categories {
			fmt.Fprintf(w, "\t%.3f", m.At(i, j))
		}
		fmt.Fprintln(w)
	}
}

func writeTo(path string, stdout io.Writer, fn func(w io.Writer) error) error {
	w, err := createOutput(path, stdout)
	if err != nil {
		return err
	}
	if err := fn(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
