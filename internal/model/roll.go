package model

import "github.com/google/uuid"

// FilmRoll represents a roll of film stock the pieces are cut from.
type FilmRoll struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Width         float64 `json:"width"`           // mm
	Length        float64 `json:"length"`          // mm
	PricePerMeter float64 `json:"price_per_meter"` // 0 if unknown
}

// NewFilmRoll creates a new FilmRoll with a generated ID.
func NewFilmRoll(name string, width, length, pricePerMeter float64) FilmRoll {
	return FilmRoll{
		ID:            uuid.New().String()[:8],
		Name:          name,
		Width:         width,
		Length:        length,
		PricePerMeter: pricePerMeter,
	}
}

// ApplyToOptions copies the roll dimensions into the given PackingOptions.
func (r FilmRoll) ApplyToOptions(o *PackingOptions) {
	o.StripWidth = r.Width
	if r.Length > 0 {
		o.MaxStripLength = r.Length
	}
}

// RollCatalog holds the film rolls the shop keeps in stock.
type RollCatalog struct {
	Rolls []FilmRoll `json:"rolls"`
}

// DefaultRollCatalog returns a catalog populated with common film roll sizes.
func DefaultRollCatalog() RollCatalog {
	return RollCatalog{
		Rolls: []FilmRoll{
			NewFilmRoll("Interior film 1220 x 50m", 1220, 50000, 0),
			NewFilmRoll("Interior film 1220 x 30m", 1220, 30000, 0),
			NewFilmRoll("Window film 1520 x 30m", 1520, 30000, 0),
			NewFilmRoll("Window film 1000 x 30m", 1000, 30000, 0),
			NewFilmRoll("Safety film 1830 x 30m", 1830, 30000, 0),
			NewFilmRoll("Sample roll 600 x 10m", 600, 10000, 0),
		},
	}
}

// FindByID returns a pointer to the roll with the given ID, or nil.
func (c *RollCatalog) FindByID(id string) *FilmRoll {
	for i := range c.Rolls {
		if c.Rolls[i].ID == id {
			return &c.Rolls[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first roll with the given name, or nil.
func (c *RollCatalog) FindByName(name string) *FilmRoll {
	for i := range c.Rolls {
		if c.Rolls[i].Name == name {
			return &c.Rolls[i]
		}
	}
	return nil
}

// Find looks a roll up by ID first, then by name.
func (c *RollCatalog) Find(key string) *FilmRoll {
	if r := c.FindByID(key); r != nil {
		return r
	}
	return c.FindByName(key)
}

// Add appends a roll to the catalog.
func (c *RollCatalog) Add(r FilmRoll) {
	c.Rolls = append(c.Rolls, r)
}

// Remove removes a roll by ID. Returns true if found and removed.
func (c *RollCatalog) Remove(id string) bool {
	for i, r := range c.Rolls {
		if r.ID == id {
			c.Rolls = append(c.Rolls[:i], c.Rolls[i+1:]...)
			return true
		}
	}
	return false
}

// Widths returns the distinct roll widths in catalog order.
func (c *RollCatalog) Widths() []float64 {
	seen := make(map[float64]bool)
	var widths []float64
	for _, r := range c.Rolls {
		if !seen[r.Width] {
			seen[r.Width] = true
			widths = append(widths, r.Width)
		}
	}
	return widths
}
