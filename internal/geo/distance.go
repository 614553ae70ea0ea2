// ABOUTME: Great-circle distance calculations over GPS coordinates
// ABOUTME: Haversine formula plus path summation for waypoint sequences

package geo

import "math"

// EarthRadiusKM is the Earth's mean radius in kilometers.
const EarthRadiusKM = 6371.0

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Haversine returns the great-circle distance in kilometers between two
// points given in decimal degrees. Pure arithmetic, defined for all finite
// inputs, symmetric in its arguments.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKM * c
}

// Distance returns the great-circle distance in kilometers between two points.
func Distance(a, b Point) float64 {
	return Haversine(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// PathDistance sums the pairwise Haversine distance over an ordered sequence
// of points. Sequences with fewer than two points yield 0.
func PathDistance(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	var total float64
	for i := 0; i < len(points)-1; i++ {
		total += Distance(points[i], points[i+1])
	}
	return total
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
