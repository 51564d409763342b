package city

import "sort"

// Assets is one complete city instance. A Scene swaps whole Assets values
// on regeneration; nothing else holds references into them.
type Assets struct {
	Stars  []Star
	Layers [][]Building // far to near, each sorted by X
	Cars   []FlyingCar
	Rain   []RainDrop
	Steam  []Steam
}

// Buildings returns the total building count across layers.
func (a *Assets) Buildings() int {
	n := 0
	for _, l := range a.Layers {
		n += len(l)
	}
	return n
}

// Signs returns the total sign count across layers.
func (a *Assets) Signs() int {
	n := 0
	for _, l := range a.Layers {
		for i := range l {
			n += len(l[i].Signs)
		}
	}
	return n
}

// Generator builds city instances from a layer table and palette.
type Generator struct {
	settings Settings
	palette  Palette
	rng      RNG
}

// NewGenerator returns a generator drawing from r.
func NewGenerator(settings Settings, palette Palette, r RNG) *Generator {
	return &Generator{settings: settings, palette: palette, rng: r}
}

// Generate builds a fresh city for a width×height viewport with its ground
// line at groundY.
func (g *Generator) Generate(width, height, groundY float64) *Assets {
	r := g.rng
	a := &Assets{}

	a.Stars = make([]Star, g.settings.StarCount)
	for i := range a.Stars {
		a.Stars[i] = newStar(r, width, height)
	}

	a.Layers = make([][]Building, len(g.settings.Layers))
	for li, layer := range g.settings.Layers {
		bs := make([]Building, 0, layer.Count)
		for i := 0; i < layer.Count; i++ {
			w := Range(r, layer.MinWidth, layer.MaxWidth)
			h := Range(r, layer.MinHeight, layer.MaxHeight)
			bs = append(bs, newBuilding(r, &g.palette, layer, Range(r, -w, width), w, h))
		}
		// Painting left to right relies on this order.
		sort.SliceStable(bs, func(i, j int) bool { return bs[i].X < bs[j].X })
		a.Layers[li] = bs
	}

	a.Cars = make([]FlyingCar, g.settings.CarCount)
	for i := range a.Cars {
		a.Cars[i] = newFlyingCar(r, width, groundY, g.palette.Neon)
	}

	a.Rain = make([]RainDrop, g.settings.RainCount)
	for i := range a.Rain {
		a.Rain[i] = NewRainDrop(r, width, height)
	}

	if len(a.Layers) > 0 {
		near := a.Layers[len(a.Layers)-1]
		a.Steam = make([]Steam, 0, g.settings.SteamCount)
		for i := 0; i < g.settings.SteamCount; i++ {
			b, ok := Pick(r, near)
			if !ok {
				break
			}
			a.Steam = append(a.Steam, newSteam(r, b.X+Range(r, 0, b.W), b.Top(groundY)))
		}
	}
	return a
}
