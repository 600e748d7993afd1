package lens2d

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Category is how a single sampled ray ended.
type Category uint8

const (
	Hit            Category = iota // ray landed on the sensor
	LensMiss                       // exit ray too far off axis at the sensor plane
	SensorMiss                     // within range but outside the pixel area
	NoIntersection                 // ray missed a lens surface
	Orthogonal                     // grazing incidence on a surface
	TIR                            // total internal reflection at a surface
	Degenerate                     // any other degenerate geometry
	numCategories
)

var categoryNames = [numCategories]string{
	Hit:            "hit",
	LensMiss:       "lens_miss",
	SensorMiss:     "sensor_miss",
	NoIntersection: "no_intersection",
	Orthogonal:     "orthogonal_incidence",
	TIR:            "total_internal_reflection",
	Degenerate:     "degenerate",
}

func (c Category) String() string {
	if c < numCategories {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// Failed reports categories that come from degenerate geometry rather than
// a bounds miss.
func (c Category) Failed() bool { return c >= NoIntersection }

// categoryOf classifies a degenerate geometry error.
func categoryOf(err error) Category {
	switch {
	case errors.Is(err, ErrNoIntersection):
		return NoIntersection
	case errors.Is(err, ErrOrthogonalIncidence):
		return Orthogonal
	case errors.Is(err, ErrTotalInternalReflection):
		return TIR
	}
	return Degenerate
}

type RayLog struct {
	Name     string
	Category Category
	Theta    Real
	Origin   Point2
	Exit     Ray   // exit ray, if the lens was crossed
	SensorY  Real  // strike height at the sensor plane, if computed
	Err      error // degenerate geometry cause, if any
}

type RayLogCache struct {
	mu   sync.Mutex
	rays map[string][]RayLog // map of ray name to logs
}

var cache = &RayLogCache{
	rays: make(map[string][]RayLog),
}

func logRay(entry RayLog) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.rays[entry.Name] = append(cache.rays[entry.Name], entry)
}

func resetRayLog() {
	cache.mu.Lock()
	cache.rays = make(map[string][]RayLog)
	cache.mu.Unlock()
}

func raysStats() {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	names := make([]string, 0, len(cache.rays))
	for k := range cache.rays {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		v := cache.rays[k]
		fmt.Printf("Ray type %s: %d logs\n", k, len(v))
		if v[0].Err != nil {
			fmt.Printf("  first: theta=%.6g err=%v\n", v[0].Theta, v[0].Err)
		}
	}
}
