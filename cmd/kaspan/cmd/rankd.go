package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dreamware/kaspan/internal/cluster"
	"github.com/dreamware/kaspan/internal/kerr"
)

var (
	rankdID          int
	rankdListen      string
	rankdAddr        string
	rankdCoordinator string
)

var rankdCmd = &cobra.Command{
	Use:   "rankd",
	Short: "Register a rank agent with a coordinator and serve its health endpoint",
	Long: `rankd is the presence half of a networked rank agent: it registers
with a coordinator, answers health checks, and otherwise stays out of the
way. The computation itself still runs through "kaspan run" — rankd exists
so a coordinator has something to track while that future transport gets
built out.`,
	RunE: runRankd,
}

func init() {
	rankdCmd.Flags().IntVar(&rankdID, "id", 0, "this rank's index in the world")
	rankdCmd.Flags().StringVar(&rankdListen, "listen", ":9090", "local listen address")
	rankdCmd.Flags().StringVar(&rankdAddr, "addr", "", "address other agents reach this rank at (default: http://127.0.0.1<listen>)")
	rankdCmd.Flags().StringVar(&rankdCoordinator, "coordinator", "", "coordinator base URL, e.g. http://localhost:8080")
}

func runRankd(cmd *cobra.Command, args []string) error {
	if rankdCoordinator == "" {
		return kerr.New(kerr.Assumption, "cmd.rankd", "--coordinator is required")
	}
	addr := rankdAddr
	if addr == "" {
		addr = "http://127.0.0.1" + rankdListen
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:              rankdListen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("rankd[%d] listening on %s (public %s)", rankdID, rankdListen, addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	if err := registerRank(context.Background(), rankdCoordinator, rankdID, addr); err != nil {
		return kerr.Wrap(kerr.Runtime, "cmd.rankd", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("rankd[%d] shutdown error: %v", rankdID, err)
	}
	log.Printf("rankd[%d] stopped", rankdID)
	return nil
}

// registerRank announces this rank to the coordinator, retrying with a
// fixed backoff to ride out the coordinator still starting up.
func registerRank(ctx context.Context, coord string, id int, addr string) error {
	body := cluster.RegisterRequest{Rank: cluster.RankInfo{ID: id, Addr: addr}}
	var lastErr error
	for i := 0; i < 10; i++ {
		lastErr = cluster.PostJSON(ctx, coord+"/register", body, nil)
		if lastErr == nil {
			log.Printf("rankd[%d] registered with coordinator @ %s", id, coord)
			return nil
		}
		log.Printf("rankd[%d] register retry %d: %v", id, i+1, lastErr)
		time.Sleep(400 * time.Millisecond)
	}
	return lastErr
}
