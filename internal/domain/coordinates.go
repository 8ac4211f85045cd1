package domain

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] (GeoJSON / globe widget order).
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }
