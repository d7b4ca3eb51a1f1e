// Command sim runs characters headless over a stage and prints where they
// ended up. Input comes from a replay file, a key script or nothing.
//
//	sim -stage demo -script "R120,RJ1,R60" -trace out.json
//	sim -replay cmd/sim/testdata/walk.json -caster chipmunk
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

func parseFlags(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("sim", flag.ContinueOnError)
	fs.SetOutput(output)

	var opts options
	fs.StringVar(&opts.ConfigDir, "config", "cmd/playground/configs", "Config directory holding character.* and stages/")
	fs.StringVar(&opts.Stage, "stage", "", "Stage name (default: the replay's stage, or demo)")
	fs.StringVar(&opts.ReplayPath, "replay", "", "Replay file to play back")
	fs.StringVar(&opts.Script, "script", "", `Key script, e.g. "R60,RJ1,N30" (L left, R right, J jump, N nothing)`)
	fs.IntVar(&opts.Ticks, "ticks", 600, "Maximum ticks to run")
	fs.IntVar(&opts.Count, "count", 1, "Number of characters sharing the input")
	fs.StringVar(&opts.Caster, "caster", "world", "Cast backend: world or chipmunk")
	fs.Float64Var(&opts.PPU, "ppu", 0, "Pixels per world unit for .tmx stages (default: tile width)")
	fs.StringVar(&opts.TracePath, "trace", "", "Write per-tick snapshots as JSON to this file")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.ReplayPath != "" && opts.Script != "" {
		return options{}, fmt.Errorf("-replay and -script are exclusive")
	}
	if opts.Ticks <= 0 {
		return options{}, fmt.Errorf("-ticks must be positive, got %d", opts.Ticks)
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.Fatalf("Invalid arguments: %v", err)
	}

	trace, err := run(opts)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	last := trace.Last()
	for i, snap := range last.Characters {
		fmt.Printf("c%d: pos (%.3f, %.3f) vel (%.3f, %.3f) rot %.2f grounded %v layer %d\n",
			i, snap.Position.X, snap.Position.Y, snap.Velocity.X, snap.Velocity.Y,
			snap.Rotation, snap.Grounded, snap.Layer)
	}
}
