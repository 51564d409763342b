package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Garsondee/neon-skyline/internal/city"
	"github.com/Garsondee/neon-skyline/internal/config"
	"github.com/Garsondee/neon-skyline/internal/render"
)

type runStats struct {
	runIndex int
	seed     int64

	report          city.Report
	strikes         int
	firstStrikeTick int
	peakFlash       float64
	image           string // PNG path, empty when not exported
}

type options struct {
	runs     int
	ticks    int
	dt       time.Duration
	seedBase int64
	seedStep int64
	width    int
	height   int
	outDir   string
	cfgPath  string
}

func main() {
	var o options
	flag.IntVar(&o.runs, "runs", 1, "number of seeded scenes")
	flag.IntVar(&o.ticks, "ticks", 600, "simulation ticks per scene")
	flag.DurationVar(&o.dt, "dt", 16*time.Millisecond, "step per tick (clamped to 50ms)")
	flag.Int64Var(&o.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&o.seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&o.width, "width", 1920, "viewport width")
	flag.IntVar(&o.height, "height", 1080, "viewport height")
	flag.StringVar(&o.outDir, "out", "", "directory for a PNG of each scene's final frame")
	flag.StringVar(&o.cfgPath, "config", "", "TOML config file (defaults when empty)")
	flag.Parse()

	if o.runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if o.ticks < 0 {
		fmt.Println("error: -ticks must be >= 0")
		return
	}
	if o.width <= 0 || o.height <= 0 {
		fmt.Println("error: -width and -height must be > 0")
		return
	}

	cfg := config.Defaults()
	if o.cfgPath != "" {
		var err error
		if cfg, err = config.Load(o.cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	palette, err := config.LoadTheme(cfg.Theme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Headless Skyline Report ===\n")
	fmt.Printf("runs=%d ticks=%d dt=%s viewport=%dx%d seed_base=%d seed_step=%d\n\n",
		o.runs, o.ticks, o.dt, o.width, o.height, o.seedBase, o.seedStep)

	all := make([]runStats, 0, o.runs)
	for i := 0; i < o.runs; i++ {
		seed := o.seedBase + int64(i)*o.seedStep
		rs, err := runScene(i+1, seed, o, cfg.Settings(), palette)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

// runScene generates a seeded city, steps it and optionally exports the
// final frame.
func runScene(runIndex int, seed int64, o options, settings city.Settings, palette city.Palette) (runStats, error) {
	scene := city.NewScene(settings, palette, city.WithViewport(o.width, o.height), city.WithSeed(seed))
	d := city.NewDriver(scene, nil)

	rs := runStats{runIndex: runIndex, seed: seed, firstStrikeTick: -1}
	tick := 0
	d.OnStrike(func(intensity float64) {
		rs.strikes++
		if rs.firstStrikeTick < 0 {
			rs.firstStrikeTick = tick
		}
		rs.peakFlash = max(rs.peakFlash, intensity)
	})
	for tick = 1; tick <= o.ticks; tick++ {
		d.Step(o.dt)
	}
	rs.report = scene.Report()

	if o.outDir != "" {
		r := render.NewRaster(o.width, o.height)
		render.NewCompositor(city.NewRNG(seed)).Render(r, scene)
		rs.image = filepath.Join(o.outDir, fmt.Sprintf("skyline_seed%d.png", seed))
		if err := render.WritePNG(rs.image, r.Image()); err != nil {
			return rs, err
		}
	}
	return rs, nil
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Print(rs.report.Format())
	fmt.Printf("lightning: strikes=%d first_strike_tick=%d peak_flash=%.2f\n",
		rs.strikes, rs.firstStrikeTick, rs.peakFlash)
	if rs.image != "" {
		fmt.Printf("image: %s\n", rs.image)
	}
	fmt.Println()
}

type aggregate struct {
	runs          int
	avgBuildings  float64
	avgSigns      float64
	minSigns      int
	maxSigns      int
	avgLitRatio   float64
	totalStrikes  int
	runsWithFlash int
}

func summarize(all []runStats) aggregate {
	agg := aggregate{runs: len(all)}
	if len(all) == 0 {
		return agg
	}
	agg.minSigns = all[0].report.Signs
	for _, rs := range all {
		r := rs.report
		agg.avgBuildings += float64(r.Buildings)
		agg.avgSigns += float64(r.Signs)
		agg.minSigns = min(agg.minSigns, r.Signs)
		agg.maxSigns = max(agg.maxSigns, r.Signs)
		windows, lit := 0, 0
		for _, l := range r.Layers {
			windows += l.Windows
			lit += l.LitWindows
		}
		if windows > 0 {
			agg.avgLitRatio += float64(lit) / float64(windows)
		}
		agg.totalStrikes += rs.strikes
		if rs.strikes > 0 {
			agg.runsWithFlash++
		}
	}
	n := float64(len(all))
	agg.avgBuildings /= n
	agg.avgSigns /= n
	agg.avgLitRatio /= n
	return agg
}

func printAggregate(all []runStats) {
	agg := summarize(all)
	fmt.Printf("=== Aggregate (%d runs) ===\n", agg.runs)
	fmt.Printf("buildings_avg=%.1f signs_avg=%.1f signs_range=%d..%d lit_window_ratio=%.3f\n",
		agg.avgBuildings, agg.avgSigns, agg.minSigns, agg.maxSigns, agg.avgLitRatio)
	fmt.Printf("lightning: total_strikes=%d runs_with_strikes=%d\n", agg.totalStrikes, agg.runsWithFlash)
}
