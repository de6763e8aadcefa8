// giftwrap animates the gift-wrapping construction of a convex hull over
// a set of 2D points, one step per frame.
//
// The points are sampled uniformly in [-bound,bound]^2 unless -points names
// a file of "x y" lines. Every step is rendered and written to out/<n>.png,
// and optionally into a ZIP of all frames.
//
// By default frames are rendered offscreen. Use -view to watch the
// construction in an OpenGL window instead.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/gmlewis/giftwrap/frames"
	"github.com/gmlewis/giftwrap/ggrender"
	"github.com/gmlewis/giftwrap/glrender"
	"github.com/gmlewis/giftwrap/hull"
	"github.com/gmlewis/giftwrap/points"
	"github.com/gmlewis/giftwrap/session"
	"github.com/gmlewis/giftwrap/vec2"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
	"github.com/pkg/profile"
)

var (
	numPoints  = flag.Int("n", 20, "Number of random points to sample")
	bound      = flag.Float64("bound", 0.9, "Sample points in [-bound,bound] on both axes")
	seed       = flag.Uint64("seed", 0, "Random seed (default is time-based)")
	pointsFile = flag.String("points", "", "Read points from this file instead of sampling them")

	outDir   = flag.String("out", "out", "Directory to write numbered PNG frames to")
	zipName  = flag.String("zip", "", "Also write all frames to this ZIP file")
	view     = flag.Bool("view", false, "Render construction to window")
	size     = flag.Int("size", 900, "Width and height of each frame in pixels")
	dt       = flag.Duration("dt", session.DefaultInterval, "Delay between construction steps")
	maxSteps = flag.Int("max-steps", session.DefaultMaxSteps, "Stop after this many steps (0 means no limit)")
	epsilon  = flag.Float64("epsilon", vec2.DefaultEpsilon, "Tolerance when matching hull vertices")
	cat      = flag.Bool("imgcat", false, "Print the final frame to an iTerm2-compatible terminal")
	verify   = flag.Bool("verify", false, "Check the finished hull against a Graham scan of the same points")

	cpuProfile = flag.String("cpuprofile", "", "Write a CPU profile to this directory")
)

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile)).Stop()
	}

	ps, err := loadPoints()
	check("points: %v", err)
	log.Printf("Building hull over %v points, centroid %v", ps.Len(), ps.Centroid())

	dir, err := frames.NewDir(*outDir)
	check("frames.NewDir: %v", err)
	async := frames.NewAsync(dir, 0)
	sink := frames.Multi{async}

	var zip *frames.Zip
	if *zipName != "" {
		zip, err = frames.NewZip(*zipName)
		check("frames.NewZip: %v", err)
		sink = append(sink, zip)
	}

	s := session.New(ps,
		session.WithInterval(*dt),
		session.WithMaxSteps(*maxSteps),
		session.WithTolerance(*epsilon),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var n int
	if *view {
		cfg := glrender.DefaultConfig
		cfg.Width, cfg.Height = *size, *size
		win, err := glrender.New(cfg)
		check("glrender.New: %v", err)
		defer win.Close()

		n, err = s.Run(ctx, win, sink)
		report(err)
		if err == nil {
			win.Hold(s.Scene())
		}
	} else {
		r, err := ggrender.New(ggrender.Config{Width: *size, Height: *size})
		check("ggrender.New: %v", err)
		defer r.Close()

		n, err = s.Run(ctx, r, sink)
		report(err)
	}

	if *verify && s.Hull().State() == hull.Closed {
		check("verify: %v", s.Hull().Verify())
		log.Printf("Hull verified: %v vertices.", s.Hull().Len()-1)
	}

	check("frames: %v", async.Close())
	if zip != nil {
		check("zip: %v", zip.Close())
		log.Printf("Wrote %v frames to %v", n, *zipName)
	}

	if *cat && n > 0 {
		check("imgcat: %v", imgcat.CatFile(dir.Filename(n), os.Stdout))
	}

	log.Println("Done.")
}

func loadPoints() (*points.Set, error) {
	if *pointsFile != "" {
		f, err := os.Open(*pointsFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return points.Read(f)
	}

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	log.Printf("Random seed: %v", s)
	return points.New(*numPoints, *bound, rand.New(rand.NewPCG(s, s)))
}

// report logs why a run stopped early. Only unexpected errors are fatal.
func report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, hull.ErrStepLimit):
		log.Printf("Hull did not close within %v steps.", *maxSteps)
	case errors.Is(err, session.ErrWindowClosed):
		log.Printf("Window closed before the hull was finished.")
	case errors.Is(err, context.Canceled):
		log.Printf("Interrupted.")
	default:
		log.Fatalf("session.Run: %v", err)
	}
}

func check(fmtStr string, args ...interface{}) {
	err := args[len(args)-1]
	if err != nil {
		log.Fatalf(fmtStr, args...)
	}
}
