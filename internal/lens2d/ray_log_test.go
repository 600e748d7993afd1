package lens2d

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestRayLogCache(t *testing.T) {
	resetRayLog()
	defer resetRayLog()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logRay(RayLog{Name: fmt.Sprintf("cat%d", i%2), Theta: Real(i)})
		}(i)
	}
	wg.Wait()

	cache.mu.Lock()
	defer cache.mu.Unlock()
	if len(cache.rays) != 2 || len(cache.rays["cat0"]) != 25 || len(cache.rays["cat1"]) != 25 {
		t.Fatalf("unexpected cache contents: %d keys", len(cache.rays))
	}
}

func TestRayLogFromSampling(t *testing.T) {
	old := Debug
	Debug = true
	resetRayLog()
	defer func() {
		Debug = old
		resetRayLog()
	}()

	c := testCamera(t, 10)
	c.SampleRay(0)
	c.SampleRay(1.2)

	cache.mu.Lock()
	defer cache.mu.Unlock()
	hits := cache.rays[Hit.String()]
	if len(hits) != 1 || hits[0].Category != Hit || hits[0].Err != nil {
		t.Fatalf("hit log wrong: %+v", hits)
	}
	fails := cache.rays[NoIntersection.String()]
	if len(fails) != 1 || !errors.Is(fails[0].Err, ErrNoIntersection) || fails[0].Theta != 1.2 {
		t.Fatalf("failure log wrong: %+v", fails)
	}
}

func TestCategory(t *testing.T) {
	if Hit.String() != "hit" || TIR.String() != "total_internal_reflection" {
		t.Fatal("category names wrong")
	}
	if Category(200).String() != "category(200)" {
		t.Fatalf("unknown category name %q", Category(200).String())
	}
	for _, c := range []Category{Hit, LensMiss, SensorMiss} {
		if c.Failed() {
			t.Fatalf("%v must not count as failed", c)
		}
	}
	for _, c := range []Category{NoIntersection, Orthogonal, TIR, Degenerate} {
		if !c.Failed() {
			t.Fatalf("%v must count as failed", c)
		}
	}

	cases := map[error]Category{
		fmt.Errorf("front surface: %w", ErrNoIntersection): NoIntersection,
		ErrOrthogonalIncidence:                             Orthogonal,
		fmt.Errorf("back: %w", ErrTotalInternalReflection): TIR,
		ErrVerticalRay:                                     Degenerate,
	}
	for err, want := range cases {
		if got := categoryOf(err); got != want {
			t.Fatalf("categoryOf(%v) = %v, want %v", err, got, want)
		}
	}
}
