package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hlidacpes/rcpsp/format"
	"github.com/hlidacpes/rcpsp/rcpsp"
	"github.com/hlidacpes/rcpsp/search"
)

var rootCmd = &cobra.Command{
	Use:   "rcpsp-tabu",
	Short: "Parallel tabu search for the resource-constrained project scheduling problem",
	Long: "rcpsp-tabu schedules one or more RCPSP instances with a parallel tabu-search\n" +
		"metaheuristic, choosing between capacity-resolution and time-resolution\n" +
		"evaluators adaptively and between a simple FIFO tabu memory and an aging,\n" +
		"elite-restarting one.",
	RunE:         runRoot,
	SilenceUsage: true,
}

var inputFiles []string

// init registers every flag. pflag's -x shorthand is restricted to a
// single rune, but spec 6's short forms (-if, -noi, -misb, ...) are
// multi-character GNU-style abbreviations, so each is registered as a
// second independent long flag (--if, --noi, ...) rather than as a
// pflag shorthand. --input-files and --if share one backing slice; for
// the other pairs optionsFromFlags merges the two values.
func init() {
	cobra.OnInitialize(initConfig)

	def := rcpsp.DefaultOptions()
	flags := rootCmd.Flags()

	flags.StringSliceVar(&inputFiles, "input-files", nil, "one or more instance files (required)")
	flags.StringSliceVar(&inputFiles, "if", nil, "alias for --input-files")

	flags.Bool("simple-tabu-list", false, "use the simple FIFO tabu memory")
	flags.Bool("stl", false, "alias for --simple-tabu-list")
	flags.Bool("advanced-tabu-list", true, "use the aging elite-restart tabu memory (default)")
	flags.Bool("atl", true, "alias for --advanced-tabu-list")

	flags.Int("number-of-iterations", def.NumberOfIterations, "iteration cap")
	flags.Int("noi", def.NumberOfIterations, "alias for --number-of-iterations")
	flags.Int("max-iter-since-best", def.MaxIterSinceBest, "iterations without improvement before diversifying")
	flags.Int("misb", def.MaxIterSinceBest, "alias for --max-iter-since-best")
	flags.Int("tabu-list-size", def.SimpleTabuListSize, "simple tabu list length (simple variant only)")
	flags.Int("tls", def.SimpleTabuListSize, "alias for --tabu-list-size")
	flags.Float64("randomize-erase-amount", def.RandomizeEraseAmount, "aging variant prune fraction, in [0,1]")
	flags.Float64("rea", def.RandomizeEraseAmount, "alias for --randomize-erase-amount")
	flags.Int("swap-life-factor", def.SwapLifeFactor, "aging lifetime factor for SWAP moves")
	flags.Int("swlf", def.SwapLifeFactor, "alias for --swap-life-factor")
	flags.Int("shift-life-factor", def.ShiftLifeFactor, "aging lifetime factor for SHIFT moves")
	flags.Int("shlf", def.ShiftLifeFactor, "alias for --shift-life-factor")
	flags.Int("swap-range", def.SwapRange, "neighborhood SWAP distance bound")
	flags.Int("swr", def.SwapRange, "alias for --swap-range")
	flags.Int("shift-range", def.ShiftRange, "neighborhood SHIFT distance bound")
	flags.Int("shr", def.ShiftRange, "alias for --shift-range")
	flags.Int("diversification-swaps", def.DiversificationSwaps, "random swaps applied per diversification")
	flags.Int("ds", def.DiversificationSwaps, "alias for --diversification-swaps")
	flags.Int64("seed", def.Seed, "random seed")
	flags.Int("workers", def.Workers, "fixed goroutine fan-out (0 = GOMAXPROCS)")

	flags.Bool("write-makespan-graph", false, "write <instance>.csv with the iter/iterCost/bestCost progress")
	flags.Bool("wmg", false, "alias for --write-makespan-graph")
	flags.Bool("write-result-file", false, "write <instance>.res with the binary best-schedule layout")
	flags.Bool("wrf", false, "alias for --write-result-file")

	flags.String("config", "", "config file (default .rcpsp.yaml)")

	_ = viper.BindPFlags(flags)
}

// initConfig loads .rcpsp.yaml (or the --config file) into viper and
// enables RCPSP_* environment lookup. optionsFromFlags reads every
// option from the flag set, not from viper, so values from the config
// file or the environment do not change the solver options.
func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".rcpsp")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("RCPSP")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig() // absence of a config file is not an error
}

// Execute runs the root command, recovering InvariantViolation panics
// into exit code 2, mapping errInstance-wrapped errors (a well-formed
// file describing an invalid project) to exit code 2, and every other
// RunE error to exit code 1.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*search.InvariantError); ok {
				fmt.Fprintln(os.Stderr, r)
				os.Exit(2)
			}
			panic(r)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errInstance) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// preferAlias returns the long-form flag's value unless the user left
// it untouched and set the short alias instead, in which case the
// alias wins.
func preferAlias(flags *pflag.FlagSet, long, short string, longVal, shortVal int) int {
	if !flags.Changed(long) && flags.Changed(short) {
		return shortVal
	}
	return longVal
}

func optionsFromFlags(flags *pflag.FlagSet) (rcpsp.Options, error) {
	opts := rcpsp.DefaultOptions()

	getInt := func(name string) int { v, _ := flags.GetInt(name); return v }
	getFloat := func(name string) float64 { v, _ := flags.GetFloat64(name); return v }
	merged := func(long, short string) int {
		return preferAlias(flags, long, short, getInt(long), getInt(short))
	}

	simple, _ := flags.GetBool("simple-tabu-list")
	simpleAlias, _ := flags.GetBool("stl")
	if simple || simpleAlias {
		opts.Tabu = rcpsp.SimpleTabuVariant
	}

	opts.NumberOfIterations = merged("number-of-iterations", "noi")
	opts.MaxIterSinceBest = merged("max-iter-since-best", "misb")
	opts.SimpleTabuListSize = merged("tabu-list-size", "tls")
	opts.SwapLifeFactor = merged("swap-life-factor", "swlf")
	opts.ShiftLifeFactor = merged("shift-life-factor", "shlf")
	opts.SwapRange = merged("swap-range", "swr")
	opts.ShiftRange = merged("shift-range", "shr")
	opts.DiversificationSwaps = merged("diversification-swaps", "ds")
	opts.Workers = getInt("workers")

	longErase, longChanged := getFloat("randomize-erase-amount"), flags.Changed("randomize-erase-amount")
	shortErase := getFloat("rea")
	if !longChanged && flags.Changed("rea") {
		opts.RandomizeEraseAmount = shortErase
	} else {
		opts.RandomizeEraseAmount = longErase
	}

	if seed, err := flags.GetInt64("seed"); err == nil {
		opts.Seed = seed
	}

	if opts.RandomizeEraseAmount < 0 || opts.RandomizeEraseAmount > 1 {
		return rcpsp.Options{}, fmt.Errorf("%w: --randomize-erase-amount must be in [0,1]", errConfig)
	}
	return opts, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(inputFiles) == 0 {
		return fmt.Errorf("%w: --input-files requires at least one path", errConfig)
	}

	opts, err := optionsFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	wmg, _ := cmd.Flags().GetBool("write-makespan-graph")
	wmgAlias, _ := cmd.Flags().GetBool("wmg")
	writeGraph := wmg || wmgAlias

	wrf, _ := cmd.Flags().GetBool("write-result-file")
	wrfAlias, _ := cmd.Flags().GetBool("wrf")
	writeResult := wrf || wrfAlias

	verbose := len(inputFiles) == 1

	for _, path := range inputFiles {
		if err := solveOne(cmd, path, opts, verbose, writeGraph, writeResult); err != nil {
			return err
		}
	}
	return nil
}

func solveOne(cmd *cobra.Command, path string, opts rcpsp.Options, verbose, writeGraph, writeResult bool) error {
	in, err := format.Load(path)
	if err != nil {
		if isInstanceError(err) {
			return fmt.Errorf("%w: %v", errInstance, err)
		}
		return fmt.Errorf("%w: %v", errConfig, err)
	}

	var graph *format.CSVProgressWriter
	if writeGraph {
		f, ferr := os.Create(strings.TrimSuffix(path, filepath.Ext(path)) + ".csv")
		if ferr != nil {
			return fmt.Errorf("%w: %v", errConfig, ferr)
		}
		defer f.Close()
		graph = format.NewCSVProgressWriter(f, rcpsp.Evaluate(in, in.SeedOrder()).Makespan)
		defer graph.Flush()
		opts.Progress = func(ev rcpsp.ProgressEvent) {
			graph.WriteIteration(ev.Iteration, ev.IterCost, ev.BestCost)
		}
	}

	start := time.Now()
	res := rcpsp.Solve(context.Background(), in, opts)
	elapsed := time.Since(start)

	sched := format.Schedule{
		BestOrder:            res.BestOrder,
		BestStart:            res.BestStart,
		BestMakespan:         res.BestMakespan,
		CriticalPathMakespan: res.CriticalPathMakespan,
		PrecedencePenalty:    res.PrecedencePenalty,
		EvalCount:            res.EvalCount,
	}
	format.PrintSchedule(cmd.OutOrStdout(), sched, elapsed, verbose)

	if writeResult {
		f, ferr := os.Create(strings.TrimSuffix(path, filepath.Ext(path)) + ".res")
		if ferr != nil {
			return fmt.Errorf("%w: %v", errConfig, ferr)
		}
		defer f.Close()
		if werr := format.WriteResultFile(f, in, res.BestOrder, res.BestStart, res.BestMakespan); werr != nil {
			return fmt.Errorf("%w: %v", errConfig, werr)
		}
	}

	return nil
}
