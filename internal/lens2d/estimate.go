package lens2d

import (
	"math"
	"runtime"
	"sync"
)

// estimateHitFraction traces trials rays spread over the source's fan
// without writing to the sensor and returns the fraction that would land
// inside the sensor area.
func estimateHitFraction(c *CameraModel, trials int) Real {
	if trials <= 0 {
		return 0
	}
	thetas := c.Source.Angles(trials)
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > trials {
		workers = trials
	}

	per, rem := trials/workers, trials%workers
	var wg sync.WaitGroup
	hitsCh := make(chan int, workers)

	lo := 0
	for w := 0; w < workers; w++ {
		n := per
		if w < rem {
			n++
		}
		if n == 0 {
			continue
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			localHits := 0
			for i := lo; i < hi; i++ {
				cat, entry := c.trace(thetas[i])
				if cat == Hit && math.Abs(entry.SensorY) <= c.Sensor.Height/2 {
					localHits++
				}
			}
			hitsCh <- localHits
		}(lo, lo+n)
		lo += n
	}

	wg.Wait()
	close(hitsCh)

	totalHits := 0
	for h := range hitsCh {
		totalHits += h
	}
	return Real(totalHits) / Real(trials)
}
