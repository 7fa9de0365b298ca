package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dreamware/kaspan/internal/cluster"
	"github.com/dreamware/kaspan/internal/csr"
	"github.com/dreamware/kaspan/internal/engine"
	"github.com/dreamware/kaspan/internal/fabric"
	"github.com/dreamware/kaspan/internal/kerr"
	"github.com/dreamware/kaspan/internal/loader"
	"github.com/dreamware/kaspan/internal/partition"
	"github.com/dreamware/kaspan/internal/runlog"
	"github.com/dreamware/kaspan/internal/storage"
)

var (
	runManifest    string
	runWorld       int
	runPartition   string
	runBlock       int64
	runOutput      string
	runCoordinator string
	runID          string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the distributed SCC engine over a manifest",
	Example: `  # Run across 4 simulated ranks with a cyclic partition
  ` + BinName() + ` run --manifest ./data/graph.manifest --world 4 --partition cyclic`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runManifest, "manifest", "", "path to the .manifest file")
	runCmd.Flags().IntVar(&runWorld, "world", 1, "number of simulated ranks")
	runCmd.Flags().StringVar(&runPartition, "partition", "trivial-slice", "partition scheme: single, cyclic, block-cyclic, trivial-slice, balanced-slice")
	runCmd.Flags().Int64Var(&runBlock, "block", 64, "block size for block-cyclic partitioning")
	runCmd.Flags().StringVar(&runOutput, "output", "", "optional path to write the scc_id array (text, one \"rank=R local=K scc_id=ID\" line per vertex, rank order)")
	runCmd.Flags().StringVar(&runCoordinator, "coordinator", "", "optional coordinator base URL to archive results with, e.g. http://localhost:8080")
	runCmd.Flags().StringVar(&runID, "run-id", "", "run identifier used when archiving to --coordinator (required if --coordinator is set)")
}

func runRun(cmd *cobra.Command, args []string) error {
	if runManifest == "" {
		return kerr.New(kerr.Assumption, "cmd.run", "--manifest is required")
	}
	if runWorld < 1 {
		return kerr.New(kerr.Assumption, "cmd.run", "--world must be >= 1, got %d", runWorld)
	}
	if runCoordinator != "" && runID == "" {
		return kerr.New(kerr.Assumption, "cmd.run", "--run-id is required when --coordinator is set")
	}

	g, err := loader.Load(runManifest)
	if err != nil {
		return err
	}

	n := g.Fw.N
	results := make([][]int64, runWorld)
	fabs := fabric.NewWorld(runWorld)

	var eg errgroup.Group
	for r := 0; r < runWorld; r++ {
		r := r
		eg.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = kerr.New(kerr.Runtime, "cmd.run", "rank %d panicked: %v", r, rec)
				}
			}()
			scheme, serr := buildScheme(runPartition, n, runWorld, r, runBlock)
			if serr != nil {
				return serr
			}
			gp := csr.SlicePart(scheme, g.Fw, g.Bw)
			lg := runlog.New(r, nil)
			lg.Phase("engine.start", "local_n", gp.LocalN())
			results[r] = engine.SCC(fabs[r], gp)
			lg.Phase("engine.done", "decided", len(results[r]))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	distinct := make(map[int64]struct{})
	for _, row := range results {
		for _, id := range row {
			distinct[id] = struct{}{}
		}
	}
	fmt.Printf("n=%d ranks=%d partition=%s components=%d\n", n, runWorld, runPartition, len(distinct))

	if runOutput != "" {
		if err := writeResults(runOutput, results); err != nil {
			return kerr.Wrap(kerr.IO, "cmd.run", err)
		}
	}

	if runCoordinator != "" {
		if err := archiveResults(runCoordinator, runID, runWorld, n, len(distinct), results); err != nil {
			return kerr.Wrap(kerr.Runtime, "cmd.run", err)
		}
	}
	return nil
}

// archiveResults reports each rank's scc_id slice to a coordinator's
// /runs endpoint, for later retrieval by run id.
func archiveResults(coordinator, runID string, world int, n int64, components int, results [][]int64) error {
	ctx := context.Background()
	for rank, row := range results {
		res := storage.RunResult{
			RunID:      runID,
			Rank:       rank,
			World:      world,
			N:          n,
			Components: components,
			SccID:      row,
		}
		if err := cluster.PostJSON(ctx, coordinator+"/runs", res, nil); err != nil {
			return err
		}
	}
	return nil
}

func buildScheme(kind string, n int64, world, rank int, block int64) (partition.Scheme[int64], error) {
	switch strings.ToLower(kind) {
	case "single":
		return partition.NewSingle[int64](n), nil
	case "cyclic":
		return partition.NewCyclic[int64](n, world, rank), nil
	case "block-cyclic", "blockcyclic":
		return partition.NewBlockCyclic[int64](n, world, rank, block), nil
	case "trivial-slice", "trivialslice":
		return partition.NewTrivialSlice[int64](n, world, rank), nil
	case "balanced-slice", "balancedslice":
		return partition.NewBalancedSlice[int64](n, world, rank), nil
	default:
		return partition.Scheme[int64]{}, kerr.New(kerr.Assumption, "cmd.run", "unknown partition scheme %q", kind)
	}
}

func writeResults(path string, results [][]int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for r, row := range results {
		for k, id := range row {
			if _, err := f.WriteString("rank=" + strconv.Itoa(r) + " local=" + strconv.Itoa(k) + " scc_id=" + strconv.FormatInt(id, 10) + "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}
