package city

// Scene is the city context: viewport, clock, toggles and the current
// Assets. It is owned by exactly one driver/host.
type Scene struct {
	Width   float64
	Height  float64
	GroundY float64
	Time    float64 // simulation clock, seconds

	ShowRain        bool
	ShowCars        bool
	ShowReflections bool

	Lightning Lightning

	settings Settings
	gen      *Generator
	rng      RNG
	assets   *Assets
}

// Option configures a Scene at construction.
type Option func(*Scene)

// WithRNG sets the random source used for generation and respawns.
func WithRNG(r RNG) Option {
	return func(s *Scene) { s.rng = r }
}

// WithSeed is WithRNG(NewRNG(seed)).
func WithSeed(seed int64) Option {
	return func(s *Scene) { s.rng = NewRNG(seed) }
}

// WithViewport sets the initial viewport size.
func WithViewport(width, height int) Option {
	return func(s *Scene) {
		s.Width = float64(width)
		s.Height = float64(height)
	}
}

// NewScene builds a scene and generates its first city.
func NewScene(settings Settings, palette Palette, opts ...Option) *Scene {
	s := &Scene{
		Width:           1280,
		Height:          720,
		ShowRain:        true,
		ShowCars:        true,
		ShowReflections: true,
		settings:        settings,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRNG(0)
	}
	s.gen = NewGenerator(settings, palette, s.rng)
	s.Regenerate()
	return s
}

// Assets returns the current city instance.
func (s *Scene) Assets() *Assets {
	return s.assets
}

// Settings returns the scene's generation settings.
func (s *Scene) Settings() Settings {
	return s.settings
}

// Regenerate replaces the whole city. The new assets are built before the
// swap so a renderer never sees a partial city.
func (s *Scene) Regenerate() {
	s.GroundY = GroundLine(s.Height, s.settings.GroundRatio)
	next := s.gen.Generate(s.Width, s.Height, s.GroundY)
	s.assets = next
}

// Resize changes the viewport and regenerates. It is a no-op for
// unchanged or degenerate sizes.
func (s *Scene) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if float64(width) == s.Width && float64(height) == s.Height {
		return false
	}
	s.Width, s.Height = float64(width), float64(height)
	s.Regenerate()
	return true
}

// Update advances the clock and every enabled particle group by dt
// seconds. It returns the intensity of a lightning strike during this
// tick, as struck before the tick's fade, or 0.
func (s *Scene) Update(dt float64) (strike float64) {
	s.Time += dt
	a := s.assets
	if s.ShowCars {
		for i := range a.Cars {
			a.Cars[i].Update(dt, s.rng)
		}
	}
	if s.ShowRain {
		for i := range a.Rain {
			a.Rain[i].Update(dt, s.rng)
		}
	}
	for i := range a.Steam {
		a.Steam[i].Update(dt, s.rng)
	}
	if s.ShowRain && Chance(s.rng, s.settings.LightningChance) {
		strike = Range(s.rng, 0.25, 0.7)
		s.Lightning.Strike(strike)
	}
	s.Lightning.Update(dt)
	return strike
}
