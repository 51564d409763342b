package city

import (
	"fmt"
	"strings"
)

// --- Snapshot types ---

// LayerReport summarises one depth layer.
type LayerReport struct {
	Index      int
	Buildings  int
	Signs      int
	Windows    int
	LitWindows int
	Roofs      [roofKindCount]int // indexed by RoofKind
}

// Report is a structural summary of the current city.
type Report struct {
	Width, Height int
	GroundY       int
	Time          float64

	Layers []LayerReport

	Buildings int
	Signs     int
	Stars     int
	Cars      int
	Rain      int
	Steam     int

	ShowRain, ShowCars, ShowReflections bool
}

// Report collects a summary of the scene.
func (s *Scene) Report() Report {
	a := s.assets
	r := Report{
		Width:           int(s.Width),
		Height:          int(s.Height),
		GroundY:         int(s.GroundY),
		Time:            s.Time,
		Stars:           len(a.Stars),
		Cars:            len(a.Cars),
		Rain:            len(a.Rain),
		Steam:           len(a.Steam),
		ShowRain:        s.ShowRain,
		ShowCars:        s.ShowCars,
		ShowReflections: s.ShowReflections,
	}
	for li, layer := range a.Layers {
		lr := LayerReport{Index: li, Buildings: len(layer)}
		for i := range layer {
			b := &layer[i]
			lr.Signs += len(b.Signs)
			lr.Windows += len(b.Windows)
			lr.LitWindows += b.LitWindows()
			lr.Roofs[b.Roof]++
		}
		r.Buildings += lr.Buildings
		r.Signs += lr.Signs
		r.Layers = append(r.Layers, lr)
	}
	return r
}

// Format returns a human-readable multi-line string of the report.
func (r Report) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Skyline Report (%dx%d, ground y=%d, t=%.1fs) ===\n",
		r.Width, r.Height, r.GroundY, r.Time)
	fmt.Fprintf(&sb, "  buildings=%d  signs=%d  cars=%d  rain=%d  steam=%d  stars=%d\n",
		r.Buildings, r.Signs, r.Cars, r.Rain, r.Steam, r.Stars)
	fmt.Fprintf(&sb, "  rain=%s  cars=%s  reflections=%s\n",
		onOff(r.ShowRain), onOff(r.ShowCars), onOff(r.ShowReflections))

	sb.WriteString("\n--- Layers (far to near) ---\n")
	for _, l := range r.Layers {
		lit := 0.0
		if l.Windows > 0 {
			lit = 100 * float64(l.LitWindows) / float64(l.Windows)
		}
		fmt.Fprintf(&sb, "  [%d] buildings=%-3d signs=%-3d windows=%-5d lit=%5.1f%%  roofs:",
			l.Index, l.Buildings, l.Signs, l.Windows, lit)
		for k := RoofNone; k < roofKindCount; k++ {
			fmt.Fprintf(&sb, " %s=%d", k, l.Roofs[k])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
