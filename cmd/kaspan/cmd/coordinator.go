package cmd

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dreamware/kaspan/internal/cluster"
	"github.com/dreamware/kaspan/internal/coordinator"
	"github.com/dreamware/kaspan/internal/storage"
)

var (
	coordListen string
	coordWorld  int
)

var coordinatorCmd = &cobra.Command{
	Use:   "coordinator",
	Short: "Run the control-plane server for a networked rankd deployment",
	Long: `coordinator tracks which rankd agents are alive and archives the
run results they report. It does not run any part of the SCC pipeline
itself; the in-process "kaspan run" path needs no coordinator at all.`,
	RunE: runCoordinator,
}

func init() {
	coordinatorCmd.Flags().StringVar(&coordListen, "listen", ":8080", "listen address")
	coordinatorCmd.Flags().IntVar(&coordWorld, "world", 0, "expected rank count (0 = unconstrained)")
}

type coordinatorServer struct {
	registry *coordinator.RankRegistry
	runs     *storage.RunStore
}

func runCoordinator(cmd *cobra.Command, args []string) error {
	srv := &coordinatorServer{
		registry: coordinator.NewRankRegistry(coordWorld),
		runs:     storage.NewRunStore(storage.NewMemoryStore()),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/register", srv.handleRegister)
	mux.HandleFunc("/ranks", srv.handleListRanks)
	mux.HandleFunc("/runs", srv.handlePostRun)
	mux.HandleFunc("/runs/", srv.handleGetRun)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:              coordListen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("coordinator listening on %s", coordListen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

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
		log.Printf("coordinator shutdown error: %v", err)
	}
	log.Println("coordinator stopped")
	return nil
}

func (s *coordinatorServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req cluster.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.registry.Register(req.Rank); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *coordinatorServer) handleListRanks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.registry.List())
}

func (s *coordinatorServer) handlePostRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var res storage.RunResult
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.runs.Put(res); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// handleGetRun serves GET /runs/{id}?world=N, returning every rank's result
// for that run once all world ranks have reported.
func (s *coordinatorServer) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	runID := r.URL.Path[len("/runs/"):]
	if runID == "" {
		http.Error(w, "missing run id", http.StatusBadRequest)
		return
	}
	world, err := strconv.Atoi(r.URL.Query().Get("world"))
	if err != nil || world < 1 {
		http.Error(w, "?world=N query parameter is required", http.StatusBadRequest)
		return
	}
	results, err := s.runs.GetAll(runID, world)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(results)
}
