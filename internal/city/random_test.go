package city

import (
	"image/color"
	"math/rand"
	"strings"
	"testing"
)

func TestRange_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		v := Range(rng, -3, 7)
		if v < -3 || v >= 7 {
			t.Fatalf("Range(-3,7) = %f, out of [-3,7)", v)
		}
	}
}

func TestIntRange_Inclusive(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	seen := map[int]bool{}
	for i := 0; i < 10000; i++ {
		v := IntRange(rng, 1, 2)
		if v < 1 || v > 2 {
			t.Fatalf("IntRange(1,2) = %d, out of [1,2]", v)
		}
		seen[v] = true
	}
	if !seen[1] || !seen[2] {
		t.Fatalf("expected both endpoints to be sampled, got %v", seen)
	}
}

func TestPick_EmptyReportsNotOK(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	if _, ok := Pick(rng, []Building(nil)); ok {
		t.Fatal("expected ok=false for an empty slice")
	}
	v, ok := Pick(rng, []string{"only"})
	if !ok || v != "only" {
		t.Fatalf("expected (only,true), got (%q,%v)", v, ok)
	}
}

func TestHexToRGB(t *testing.T) {
	c, err := HexToRGB("#ff006e")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := color.RGBA{R: 0xff, G: 0x00, B: 0x6e, A: 255}
	if c != want {
		t.Fatalf("expected %v, got %v", want, c)
	}
	for _, bad := range []string{"", "ff006e", "#ff00", "#gg0000"} {
		if _, err := HexToRGB(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParsePalette_ReportsEveryProblem(t *testing.T) {
	_, err := ParsePalette(nil, []string{"#zzzzzz"}, []string{"#000000"}, nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	msg := err.Error()
	for _, want := range []string{"neon palette is empty", "window palette", "sign text pool is empty"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected error to mention %q, got: %s", want, msg)
		}
	}
}
