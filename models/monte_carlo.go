package models

import (
	"math"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/cpu"
	"golang.org/x/exp/rand"
)

// MonteCarloChunks is the fixed number of work units a simulation is split
// into. Chunk i always uses seed+i, so the estimate does not depend on how
// many workers run.
const MonteCarloChunks = 64

type MonteCarlo struct {
	Paths    int
	Seed     uint64
	Workers  int      // 0 means one per logical CPU
	Progress Progress // optional, ticked once per chunk
}

type MCResult struct {
	Price  float64
	StdErr float64
}

type chunkSum struct {
	n     int
	sum   float64
	sumSq float64
}

// European estimates a European option value by sampling the terminal
// price of geometric Brownian motion with antithetic pairs.
func (mc *MonteCarlo) European(in OptionInputs) (MCResult, error) {
	if err := in.validate(); err != nil {
		return MCResult{}, err
	}
	if mc.Paths < 1 {
		return MCResult{}, errors.Wrapf(ErrInvalidInputs, "monte carlo needs at least one path, got %d", mc.Paths)
	}
	if in.T == 0 {
		return MCResult{Price: in.intrinsic(in.Spot)}, nil
	}

	drift := (in.RiskFreeRate - in.DividendYield - 0.5*in.Volatility*in.Volatility) * in.T
	diffusion := in.Volatility * math.Sqrt(in.T)

	sums := make([]chunkSum, MonteCarloChunks)
	jobs := make(chan int, MonteCarloChunks)
	for i := 0; i < MonteCarloChunks; i++ {
		jobs <- i
	}
	close(jobs)

	numWorkers := mc.workers()
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chunk := range jobs {
				sums[chunk] = mc.simulateChunk(in, chunk, drift, diffusion)
				if mc.Progress != nil {
					mc.Progress.Increment()
				}
			}
		}()
	}
	wg.Wait()

	var total chunkSum
	for _, s := range sums {
		total.n += s.n
		total.sum += s.sum
		total.sumSq += s.sumSq
	}

	df := math.Exp(-in.RiskFreeRate * in.T)
	n := float64(total.n)
	mean := total.sum / n
	result := MCResult{Price: df * mean}
	if total.n > 1 {
		variance := (total.sumSq - n*mean*mean) / (n - 1)
		if variance < 0 {
			variance = 0
		}
		result.StdErr = df * math.Sqrt(variance/n)
	}
	return result, nil
}

func (mc *MonteCarlo) simulateChunk(in OptionInputs, chunk int, drift, diffusion float64) chunkSum {
	n := mc.Paths / MonteCarloChunks
	if chunk < mc.Paths%MonteCarloChunks {
		n++
	}

	rng := rand.New(rand.NewSource(mc.Seed + uint64(chunk)))
	var s chunkSum
	for i := 0; i < n; i++ {
		z := rng.NormFloat64()
		up := in.Spot * math.Exp(drift+diffusion*z)
		down := in.Spot * math.Exp(drift-diffusion*z)
		v := 0.5 * (in.intrinsic(up) + in.intrinsic(down))
		s.sum += v
		s.sumSq += v * v
	}
	s.n = n
	return s
}

func (mc *MonteCarlo) workers() int {
	n := mc.Workers
	if n <= 0 {
		n = LogicalCPUs()
	}
	if n > MonteCarloChunks {
		n = MonteCarloChunks
	}
	return n
}

// LogicalCPUs reports the logical CPU count, falling back to the Go
// runtime's view when the host cannot be queried.
func LogicalCPUs() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}
