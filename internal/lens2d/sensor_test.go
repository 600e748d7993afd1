package lens2d

import (
	"errors"
	"sync"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func mustSensor(t *testing.T, h Real, m int) *Sensor {
	t.Helper()
	s, err := NewSensor(h, m)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewSensorValidation(t *testing.T) {
	for _, m := range []int{0, -3, 4, 10} {
		if _, err := NewSensor(5, m); !errors.Is(err, ErrConfig) {
			t.Fatalf("M=%d: expected config error, got %v", m, err)
		}
	}
	if _, err := NewSensor(0, 5); !errors.Is(err, ErrConfig) {
		t.Fatalf("h=0: expected config error, got %v", err)
	}
}

func TestSensorPixelAt(t *testing.T) {
	s := mustSensor(t, 10, 11)
	cases := []struct {
		x, y   Real
		px, py int
	}{
		{0, 0, 5, 5},
		{5, 5, 11, 0},
		{-5, -5, 0, 11},
		{-5, 5, 0, 0},
	}
	for _, c := range cases {
		px, py, ok := s.PixelAt(c.x, c.y)
		if !ok || px != c.px || py != c.py {
			t.Fatalf("PixelAt(%g, %g) = (%d, %d, %v), want (%d, %d)", c.x, c.y, px, py, ok, c.px, c.py)
		}
	}
	if _, _, ok := s.PixelAt(5.1, 0); ok {
		t.Fatal("point off the sensor must not map to a pixel")
	}
	if _, _, ok := s.PixelAt(0, -5.0001); ok {
		t.Fatal("point below the sensor must not map to a pixel")
	}
}

func TestSensorWriteAndRotate(t *testing.T) {
	s := mustSensor(t, 4, 5)
	for _, y := range []Real{0, 2, -2} {
		if !s.Write(y) {
			t.Fatalf("Write(%g) missed", y)
		}
	}
	if s.Write(2.5) {
		t.Fatal("Write beyond the edge must miss")
	}

	want := mat.NewDense(5, 5, []float64{
		0, 0, 1, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
	})
	if !mat.Equal(s.Grid(), want) {
		t.Fatalf("grid after writes:\n%v", mat.Formatted(s.Grid()))
	}
	if s.Hits() != 3 || s.CenterColumnSum() != 3 {
		t.Fatalf("hits %d, center column %g", s.Hits(), s.CenterColumnSum())
	}

	s.Rotate()
	want = mat.NewDense(5, 5, []float64{
		0, 0, 1, 0, 0,
		0, 0, 0, 0, 0,
		1, 0, 1, 0, 1,
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
	})
	if !mat.Equal(s.Grid(), want) {
		t.Fatalf("grid after rotate:\n%v", mat.Formatted(s.Grid()))
	}
	if s.CenterColumnSum() != 3 {
		t.Fatalf("rotate changed the center column: %g", s.CenterColumnSum())
	}
	if s.Max() != 1 {
		t.Fatalf("max %g", s.Max())
	}
}

func TestSensorRotateNotIdempotent(t *testing.T) {
	s := mustSensor(t, 4, 5)
	s.Write(0)
	s.Write(2)
	s.Write(-2)
	s.Rotate()
	once := s.Grid()
	s.Rotate()
	if mat.Equal(once, s.Grid()) {
		t.Fatal("second rotate must add again")
	}
	if s.At(2, 0) != 2 {
		t.Fatalf("left edge after two rotations: %g", s.At(2, 0))
	}
}

func TestSensorRotateSinglePixel(t *testing.T) {
	s := mustSensor(t, 1, 1)
	s.Write(0)
	s.Rotate()
	if s.At(0, 0) != 1 {
		t.Fatalf("single pixel sensor: %g", s.At(0, 0))
	}
}

func TestSensorConcurrentWrites(t *testing.T) {
	const goroutines, writes = 8, 1000
	s := mustSensor(t, 5, 11)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < writes; i++ {
				s.Write(0)
			}
		}()
	}
	wg.Wait()

	if got := s.At(5, 5); got != goroutines*writes {
		t.Fatalf("center pixel %g, want %d", got, goroutines*writes)
	}
	if s.Hits() != goroutines*writes {
		t.Fatalf("hits %d", s.Hits())
	}
}

func TestSensorPartialMerge(t *testing.T) {
	s := mustSensor(t, 4, 5)
	s.Write(0)

	a, b := s.newPartial(), s.newPartial()
	for _, y := range []Real{0, 2} {
		if !s.writePartial(a, y) {
			t.Fatalf("writePartial(%g) missed", y)
		}
	}
	if !s.writePartial(b, -2) || s.writePartial(b, 3) {
		t.Fatal("partial write bounds wrong")
	}
	if s.Hits() != 1 || s.At(2, 2) != 1 {
		t.Fatal("partial writes leaked into the sensor before merge")
	}

	s.merge(a)
	s.merge(b)
	want := mat.NewDense(5, 5, []float64{
		0, 0, 1, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 2, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 1, 0, 0,
	})
	if !mat.Equal(s.Grid(), want) {
		t.Fatalf("grid after merge:\n%v", mat.Formatted(s.Grid()))
	}
	if s.Hits() != 4 || s.CenterColumnSum() != 4 {
		t.Fatalf("hits %d, center column %g", s.Hits(), s.CenterColumnSum())
	}
}
