package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/stat-engine/internal/config"
	"github.com/KirkDiggler/stat-engine/internal/events"
	"github.com/KirkDiggler/stat-engine/internal/scenario"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scenarios, err := loadScenarios(cfg.Simulation.Scenarios)
	if err != nil {
		log.Fatalf("Failed to load scenarios: %v", err)
	}

	results, err := runAll(ctx, scenarios, cfg.Simulation)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	failed := 0
	for _, result := range results {
		for _, r := range result.Reports {
			log.Printf("[%s] step %d %s\n%s", result.Name, r.Step, r.Stat, r.Text)
		}
		for _, f := range result.Failures {
			log.Printf("[%s] FAIL %s", result.Name, f)
		}
		if !result.Passed() {
			failed++
		}
	}

	if failed > 0 {
		log.Printf("%d of %d scenarios failed", failed, len(results))
		os.Exit(1)
	}
	log.Printf("%d scenarios passed", len(results))
}

func loadScenarios(paths []string) ([]*scenario.Scenario, error) {
	if len(paths) == 0 {
		s, err := scenario.Reference()
		if err != nil {
			return nil, err
		}
		return []*scenario.Scenario{s}, nil
	}

	out := make([]*scenario.Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := scenario.Load(path)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// runAll runs every scenario on its own goroutine; each run owns its stats
func runAll(ctx context.Context, scenarios []*scenario.Scenario, cfg config.SimulationConfig) ([]*scenario.Result, error) {
	bus := events.NewBus()
	bus.SetVerbose(cfg.Verbose)

	var mu sync.Mutex
	var committed int
	bus.Subscribe(events.EventTypeStatCommitted, &events.ListenerFunc{
		ListenerID: "commit-counter",
		Handler: func(events.Event) error {
			mu.Lock()
			committed++
			mu.Unlock()
			return nil
		},
	})

	results := make([]*scenario.Result, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)

	for i, s := range scenarios {
		g.Go(func() error {
			result, err := scenario.Run(ctx, s, &scenario.RunOptions{
				Bus:     bus,
				Verbose: cfg.Verbose,
			})
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if committed > 0 {
		log.Printf("%d stats committed across %d scenarios", committed, len(scenarios))
	}
	return results, nil
}
