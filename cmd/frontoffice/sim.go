package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jtalbot/frontoffice/internal/api"
	"github.com/jtalbot/frontoffice/internal/engine"
	"github.com/jtalbot/frontoffice/internal/entropy"
	"github.com/jtalbot/frontoffice/internal/market"
	"github.com/jtalbot/frontoffice/internal/negotiation"
	"github.com/jtalbot/frontoffice/internal/persistence"
	"github.com/jtalbot/frontoffice/internal/personality"
	"github.com/jtalbot/frontoffice/internal/roster"
)

func newSimCmd() *cobra.Command {
	var (
		players       int
		port          int
		speed         float64
		archetypePath string
		locationPath  string
		blend         bool
	)

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the league simulation with the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSim(players, port, speed, archetypePath, locationPath, blend)
		},
	}

	cmd.Flags().IntVar(&players, "players", 120, "number of players in the league")
	cmd.Flags().IntVar(&port, "port", 8080, "HTTP API port")
	cmd.Flags().Float64Var(&speed, "speed", 1.0, "tick speed multiplier (0 = paused)")
	cmd.Flags().StringVar(&archetypePath, "archetypes", "", "archetype table JSON (empty = builtin)")
	cmd.Flags().StringVar(&locationPath, "locations", "", "location rules JSON (empty = builtin)")
	cmd.Flags().BoolVar(&blend, "blend", true, "enable archetype blending")

	return cmd
}

func runSim(players, port int, speed float64, archetypePath, locationPath string, blend bool) error {
	seed := flagSeed
	if seed == 0 {
		seed = entropy.Seed()
	}
	slog.Info("front office simulation", "seed", seed, "players", players)

	if dir := filepath.Dir(flagDBPath); dir != "." {
		os.MkdirAll(dir, 0755)
	}
	db, err := persistence.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	slog.Info("database opened", "path", flagDBPath)

	mkt := market.New(seed)

	var (
		roundPlayers  []*roster.Player
		personalities map[string]*personality.Personality
		startTick     uint64
	)

	if db.HasLeagueState() {
		slog.Info("found saved league state, loading...")
		roundPlayers, personalities, err = db.LoadPlayers()
		if err != nil {
			return fmt.Errorf("load league state: %w", err)
		}
		if tickStr, err := db.GetMeta("last_tick"); err == nil {
			if t, err := strconv.ParseUint(tickStr, 10, 64); err == nil {
				startTick = t
			}
		}
		mkt.Advance(int(startTick))
		slog.Info("league state restored",
			"players", len(roundPlayers),
			"tick", startTick,
			"sim_time", engine.SimTime(startTick),
		)
	} else {
		slog.Info("no saved state found, generating new league...")
		roundPlayers, personalities, err = generateLeague(seed, players, personality.GeneratorConfig{
			ArchetypePath: archetypePath,
			LocationPath:  locationPath,
			BlendEnabled:  blend,
			Market:        mkt,
		})
		if err != nil {
			return fmt.Errorf("generate league: %w", err)
		}
	}

	evalRng := rand.New(rand.NewSource(seed + 500))
	eval := negotiation.NewEvaluator(negotiation.DefaultCalibration(), evalRng)

	sim := engine.NewSimulation(roundPlayers, personalities, mkt, eval, seed)
	sim.LastTick = startTick
	sim.OnDecision = func(playerID string, year, week int, team string,
		offer negotiation.ContractOffer, ev negotiation.Evaluation) {
		if err := db.AppendDecision(playerID, year, week, team, offer, ev); err != nil {
			slog.Error("decision log failed", "error", err, "player", playerID)
		}
	}

	// Save on fresh generation only (loaded leagues are already saved).
	if startTick == 0 {
		if err := db.SaveLeagueState(sim); err != nil {
			slog.Error("initial save failed", "error", err)
		}
	}

	eng := engine.NewEngine()
	eng.Tick = startTick
	eng.Speed = speed

	// Wire tick callbacks. Auto-save monthly.
	eng.OnWeek = func(tick uint64) {
		sim.TickWeek(tick)
		if tick%4 == 0 {
			if err := db.SaveLeagueState(sim); err != nil {
				slog.Error("auto-save failed", "error", err)
			}
		}
	}
	eng.OnSeason = sim.TickSeason

	adminKey := os.Getenv("FRONTOFFICE_ADMIN_KEY")
	if adminKey == "" {
		slog.Warn("FRONTOFFICE_ADMIN_KEY not set, admin POST endpoints disabled")
	}

	apiServer := &api.Server{
		Sim:      sim,
		Eng:      eng,
		DB:       db,
		Port:     port,
		AdminKey: adminKey,
	}
	apiServer.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		eng.Stop()
	}()

	fmt.Printf("\nLeague is live: %d players across %d teams.\n", len(roundPlayers), len(roster.Teams))
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", port)
	if startTick > 0 {
		fmt.Printf("Resuming from tick %d (%s)\n", startTick, engine.SimTime(startTick))
	}
	fmt.Println("Starting simulation... (Ctrl+C to stop)")

	eng.Run()

	slog.Info("final save...")
	if err := db.SaveLeagueState(sim); err != nil {
		slog.Error("final save failed", "error", err)
	}

	fmt.Println("Simulation stopped. League state saved.")
	return nil
}

// generateLeague spawns a fresh player pool and a personality for each.
func generateLeague(seed int64, count int, cfg personality.GeneratorConfig) (
	[]*roster.Player, map[string]*personality.Personality, error) {

	spawner := roster.NewSpawner(seed)
	players := spawner.SpawnPlayers(count)

	gen := personality.NewGenerator(cfg, rand.New(rand.NewSource(seed+100)))
	personalities := make(map[string]*personality.Personality, len(players))
	for _, pl := range players {
		p, err := gen.Generate(pl, 1)
		if err != nil {
			return nil, nil, fmt.Errorf("personality for %s: %w", pl.Name, err)
		}
		personalities[pl.ID.String()] = p
	}
	return players, personalities, nil
}
