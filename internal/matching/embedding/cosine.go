// internal/matching/embedding/cosine.go
package embedding

import "math"

// Cosine returns the cosine similarity of two vectors. Mismatched lengths or
// a zero-magnitude vector yield 0 rather than an error; the composer treats
// that as no semantic signal.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
