// Command constella searches for prime constellations: it configures a
// search engine from a key=value configuration file and command line
// overrides, then prints discovered tuples and periodic throughput reports
// until interrupted.
package main

import (
	"fmt"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/constella/constella/internal/metrics"
	"github.com/constella/constella/internal/status"
	"github.com/constella/constella/search"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "constella [key=value ...]",
		Short: "Search for prime constellations",
		Long: "constella sieves and Fermat-tests candidates of the form B + f*P for a\n" +
			"primorial P, looking for tuples of simultaneous probable primes matching a\n" +
			"constellation pattern. Settings come from an optional key=value configuration\n" +
			"file (PrimeTableLimit, ConstellationPattern, PrimorialNumber, PrimorialOffset,\n" +
			"SieveBits, Difficulty, TupleLengthMin, RefreshInterval, Workers, MetricsBind),\n" +
			"each overridable as a key=value argument.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, args)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a key=value configuration file")
	return cmd
}

func run(cfg Config) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}
	defer logger.Sync()

	engine := search.New(logger)
	if err := engine.SetParams(search.Params{
		Workers:              cfg.Workers,
		ConstellationPattern: cfg.Pattern,
		PrimeTableLimit:      cfg.PrimeTableLimit,
		PrimorialNumber:      cfg.PrimorialNumber,
		PrimorialOffset:      cfg.PrimorialOffset,
		SieveSize:            1 << cfg.SieveBits,
	}); err != nil {
		return err
	}
	params := engine.Params()
	fmt.Printf("Workers: %d\n", params.Workers)
	fmt.Printf("Constellation pattern: %v\n", params.ConstellationPattern)
	fmt.Printf("Prime table limit: %d\n", params.PrimeTableLimit)
	fmt.Printf("Primorial number: %d\n", params.PrimorialNumber)
	fmt.Printf("Primorial offset: %d\n", params.PrimorialOffset)
	fmt.Printf("Sieve size: %d bits (%d words)\n", params.SieveSize, params.SieveSize/search.WordSize)

	if err := engine.Init(); err != nil {
		return err
	}
	stats := engine.Stats()
	fmt.Printf("Table of %d primes generated in %s.\n", stats.PrimeTableSize, search.FormatDuration(stats.PrimeTableGenerationTime))
	fmt.Printf("Modular inverses generated in %s.\n", search.FormatDuration(stats.ModularInversesGenerationTime))
	primorial := engine.Primorial()
	if primorial.BitLen() <= 64 {
		fmt.Printf("Primorial: %s\n", primorial.String())
	} else {
		fmt.Printf("Primorial: ~2^%d\n", primorial.BitLen()-1)
	}

	engine.StartWorkers()

	pattern := params.ConstellationPattern
	patternMin := cfg.PatternMin
	if len(patternMin) == 0 {
		patternMin = make([]bool, len(pattern))
		for i := range patternMin {
			patternMin[i] = true
		}
	}
	kMin := cfg.TupleLengthMin
	if kMin == 0 {
		kMin = len(pattern)
	}
	targetMin := new(big.Int).Lsh(big.NewInt(1), uint(cfg.Difficulty))
	targetMax := new(big.Int).Lsh(targetMin, 1)
	warnings, errs := engine.AddJob(search.Job{
		ID:                1,
		ClearPreviousJobs: true,
		Pattern:           pattern,
		PatternMin:        patternMin,
		TargetMin:         targetMin,
		TargetMax:         targetMax,
		KMin:              kMin,
	})
	for _, w := range warnings {
		logger.Warn(w)
	}
	if len(errs) > 0 {
		engine.Stop()
		return errors.Errorf("job rejected: %s", strings.Join(errs, "; "))
	}

	var collector *metrics.Collector
	if cfg.MetricsBind != "" {
		collector = metrics.NewCollector()
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", collector.Handler())
			if err := http.ListenAndServe(cfg.MetricsBind, mux); err != nil {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	reporter := status.NewReporter(os.Stdout)
	fmt.Printf("Started search for %d-tuples above 2^%d.\n", kMin, int(cfg.Difficulty))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	poll := time.NewTicker(100 * time.Millisecond)
	defer poll.Stop()
	refresh := time.NewTicker(time.Duration(cfg.RefreshInterval * float64(time.Second)))
	defer refresh.Stop()

	for {
		select {
		case <-sigCh:
			fmt.Println("\nInterrupted, stopping workers...")
			engine.Stop()
			return nil
		case <-refresh.C:
			s := engine.Stats()
			reporter.ReportStats(s, len(pattern))
			if collector != nil {
				collector.Update(s)
			}
		case <-poll.C:
			elapsed := search.SecondsSince(engine.Stats().SearchStartInstant)
			for {
				out := engine.PopOutput()
				if out == nil {
					break
				}
				reporter.ReportTuple(elapsed, out)
			}
		}
	}
}
