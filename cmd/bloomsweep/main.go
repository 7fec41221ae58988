package main

import (
	"flag"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"bloomfield/internal/core"
	"bloomfield/internal/sims/flora"
)

type paramSet struct {
	growBatch      int
	fastDeathBatch int
	reactiveMin    int
	reactiveMax    int
	lifeSpeed      float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("grow=%d death=%d min=%d max=%d speed=%.4f",
		p.growBatch, p.fastDeathBatch, p.reactiveMin, p.reactiveMax, p.lifeSpeed)
}

type scenarioResult struct {
	params      paramSet
	peakCount   int
	peakStep    int
	fallingPeak int
	recoverStep int
	endCount    int
}

// Phases of the fixed activity arc, in ticks at 60 Hz.
const (
	tickRate   = 60.0
	loudStart  = 240 // 4 s of quiet warmup
	quietStart = 960 // then 12 s of loud music
)

func main() {
	steps := flag.Int("steps", 1500, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	baseCfg := flora.DefaultConfig()
	baseCfg.Reactive = true

	growOptions := []int{5, 10, 20}
	deathOptions := []int{3, 5, 10}
	boundsOptions := []struct{ min, max int }{
		{min: 20, max: 600},
		{min: 30, max: 1500},
		{min: 50, max: 2500},
	}
	speedOptions := []float64{1.0 / 24, 1.0 / 18, 1.0 / 12}

	var sets []paramSet
	for _, grow := range growOptions {
		for _, death := range deathOptions {
			for _, bounds := range boundsOptions {
				for _, speed := range speedOptions {
					sets = append(sets, paramSet{
						growBatch:      grow,
						fastDeathBatch: death,
						reactiveMin:    bounds.min,
						reactiveMax:    bounds.max,
						lifeSpeed:      speed,
					})
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(baseCfg, params, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	best := scenarioResult{}
	for res := range results {
		all = append(all, res)
		if res.peakCount > best.peakCount {
			best = res
		}
		threshold := int(float64(res.params.reactiveMax) * 0.8)
		if res.peakCount >= threshold {
			fmt.Printf("Candidate reached %d blooms (threshold %d) at step %d with %s\n",
				res.peakCount, threshold, res.peakStep, res.params)
		}
	}

	sort.Slice(all, func(i, j int) bool { return all[i].peakCount > all[j].peakCount })
	elapsed := time.Since(start)

	fmt.Printf("\nTop 5 results (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) peak=%d step=%d falling=%d recover=%d end=%d params=%s\n",
			i+1, res.peakCount, res.peakStep, res.fallingPeak, res.recoverStep, res.endCount, res.params)
	}

	fmt.Printf("\nBest overall: peak=%d step=%d falling=%d recover=%d end=%d params=%s\n",
		best.peakCount, best.peakStep, best.fallingPeak, best.recoverStep, best.endCount, best.params)
}

func runScenario(base flora.Config, params paramSet, steps int) scenarioResult {
	cfg := base
	cfg.Params.GrowBatch = params.growBatch
	cfg.Params.FastDeathBatch = params.fastDeathBatch
	cfg.Params.ReactiveMin = params.reactiveMin
	cfg.Params.ReactiveMax = params.reactiveMax
	cfg.Params.LifeSpeedBase = params.lifeSpeed

	field := flora.NewWithConfig(cfg)
	field.Reset(1337)

	vp := core.Viewport{W: 1280, H: 720}
	dt := 1.0 / tickRate

	res := scenarioResult{params: params}
	recoverTarget := params.reactiveMin * 2
	for step := 0; step < steps; step++ {
		field.Update(profileMetrics(step), dt, vp)

		if count := field.Count(); count > res.peakCount {
			res.peakCount = count
			res.peakStep = step + 1
		}
		if falling := field.FallingCount(); falling > res.fallingPeak {
			res.fallingPeak = falling
		}
		if res.recoverStep == 0 && step >= quietStart && field.Count() <= recoverTarget {
			res.recoverStep = step + 1
		}
	}
	res.endCount = field.Count()
	return res
}

// profileMetrics plays a fixed quiet/loud/quiet arc: silence while the field
// settles, twelve seconds of pulsed music, then silence again.
func profileMetrics(step int) core.Metrics {
	if step < loudStart || step >= quietStart {
		return core.Metrics{Volume: 0.02, SpectralFullness: 0.15}
	}
	t := float64(step) / tickRate
	// 2 Hz volume pulses so onsets register as beats.
	pulse := math.Sin(2 * math.Pi * 2 * t)
	if pulse < 0 {
		pulse = 0
	}
	pulse = math.Pow(pulse, 4)
	return core.Metrics{
		Volume:           0.12 + 0.5*pulse,
		Pitch:            440,
		PitchConfidence:  0.9,
		SpectralFullness: 0.85,
	}
}
