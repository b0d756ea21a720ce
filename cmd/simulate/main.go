// Command simulate replays seeded pursuer trajectories on a map and prints
// their digests. Each run is simulated twice; a mismatch means movement is no
// longer deterministic and the command exits non-zero.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ugaemi/mazechase-server/internal/game"
	"github.com/ugaemi/mazechase-server/internal/mapfile"
	"github.com/ugaemi/mazechase-server/internal/sched"
	"github.com/ugaemi/mazechase-server/internal/store"
)

func main() {
	mapPath := flag.String("map", "", "map file (default: embedded classic map)")
	seed := flag.Uint64("seed", 1, "seed of the first run")
	steps := flag.Int("steps", 3600, "fixed steps per run")
	runs := flag.Int("runs", 1, "number of runs, seeds counting up from -seed")
	record := flag.Bool("record", false, "save digests as run records (needs DATABASE_URL)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	m, err := mapfile.LoadOrDefault(*mapPath)
	if err != nil {
		slog.Error("failed to load map", "error", err)
		os.Exit(1)
	}

	var runStore store.RunStore
	if *record {
		url := os.Getenv("DATABASE_URL")
		if url == "" {
			slog.Error("-record needs DATABASE_URL")
			os.Exit(2)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		s, err := store.NewPostgresStore(ctx, url)
		cancel()
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer s.Close()
		runStore = s
	}

	grid := m.Grid()
	ts := m.TileSizeOrDefault()
	start := releaseStart(m, grid, ts)
	digest := mapfile.Digest(m)

	failed := false
	for i := 0; i < *runs; i++ {
		runSeed := *seed + uint64(i)
		traj := game.SimulateGhostMovement(grid, ts, game.NewRand(runSeed), start, *steps)
		again := game.SimulateGhostMovement(grid, ts, game.NewRand(runSeed), start, *steps)

		got, want := game.TrajectoryDigest(traj), game.TrajectoryDigest(again)
		status := "ok"
		if got != want {
			status = "MISMATCH"
			failed = true
		}
		if bad := outOfBounds(grid, traj); bad >= 0 {
			status = fmt.Sprintf("OUT OF BOUNDS at step %d", bad)
			failed = true
		}

		final := start.Tile
		if len(traj) > 0 {
			final = traj[len(traj)-1].Tile
		}
		fmt.Printf("seed=%d steps=%d digest=%s final=(%d,%d) %s\n",
			runSeed, len(traj), got, final.X, final.Y, status)

		if runStore != nil {
			run := store.NewRunRecord(runSeed, m.Name, digest)
			run.Steps = int64(len(traj))
			run.Outcome = "simulated"
			run.TrajectoryDigest = got
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := runStore.SaveRun(ctx, run)
			cancel()
			if err != nil {
				slog.Error("failed to record run", "seed", runSeed, "error", err)
				failed = true
			}
		}
	}

	if failed {
		os.Exit(1)
	}
}

// releaseStart places the simulated pursuer where the first pursuer would
// leave the pen, heading up.
func releaseStart(m *game.MapData, grid *game.CollisionGrid, ts float64) game.GhostState {
	bounds := game.ResolveJailBounds(m, grid)
	jail := game.NewJailService(bounds, grid, ts, game.NewRand(0), sched.New())
	spawn := game.ResolveSpawnTile(m, grid, bounds)
	p := game.NewPursuer(1, jail.HomeTiles(1)[0])
	tile := jail.FindReleaseTile(p, spawn, game.PreferLeft)
	return game.GhostState{Tile: tile, Dir: game.DirUp, Speed: game.PursuerSpeed}
}

// outOfBounds returns the first step whose tile left the map, or -1.
func outOfBounds(grid *game.CollisionGrid, traj []game.TrajectoryStep) int {
	for _, s := range traj {
		if !grid.InBounds(s.Tile.X, s.Tile.Y) {
			return s.Step
		}
	}
	return -1
}
