package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

const (
	// Denominator of the affine rescale: the largest unsigned 32-bit value.
	fieldMax = 0xFFFFFFFF

	latFieldEnd = 8
	lonFieldEnd = 16
)

// Represents a name mapped onto the globe.
// A DerivedLocation is fully determined by SourceText: the digest fields and
// the rescaled coordinates are never reinterpreted after creation.
type DerivedLocation struct {
	SourceText  string
	DigestHex   string
	LatFieldHex string
	LonFieldHex string
	LatField    uint32
	LonField    uint32
	Latitude    float64
	Longitude   float64
}

// Derive maps text onto a point on the globe.
//
// The SHA-256 digest of the UTF-8 bytes of text is split into two 4-byte
// fields (bytes [0,4) for latitude, [4,8) for longitude), each rescaled
// linearly onto its degree range and rounded to 4 decimal places.
// Input is hashed as given: no trimming, case folding or normalization.
func Derive(text string) DerivedLocation {
	sum := sha256.Sum256([]byte(text))
	digest := hex.EncodeToString(sum[:])

	latHex := digest[:latFieldEnd]
	lonHex := digest[latFieldEnd:lonFieldEnd]

	// Fixed-width lowercase hex from the encoder always parses.
	latField, _ := strconv.ParseUint(latHex, 16, 32)
	lonField, _ := strconv.ParseUint(lonHex, 16, 32)

	return DerivedLocation{
		SourceText:  text,
		DigestHex:   digest,
		LatFieldHex: latHex,
		LonFieldHex: lonHex,
		LatField:    uint32(latField),
		LonField:    uint32(lonField),
		Latitude:    round4(float64(latField)/fieldMax*180 - 90),
		Longitude:   round4(float64(lonField)/fieldMax*360 - 180),
	}
}

// Coordinates returns the rounded point of the location.
func (l DerivedLocation) Coordinates() Coordinates {
	return Coordinates{Lat: l.Latitude, Lon: l.Longitude}
}

// round4 rounds v to 4 decimal places the way fixed-point formatting does.
func round4(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 4, 64), 64)
	return r
}
