// Package palette picks display colors for seat categories.
package palette

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Fallback is returned when no acceptable color is found.
const Fallback = "E74C3C"

const (
	attempts      = 100
	minSpread     = 40 // below this the color reads as grey
	minBrightness = 50
	maxBrightness = 220
	minDistance   = 60
)

// Reserved colors are used by the seat map itself and are never handed out.
var Reserved = []string{"505050", "808080", "A9A9A9", "D3D3D3", "000000", "FFFFFF"}

type rgb struct{ r, g, b int }

// Generate returns a random color, as upper-case hex without '#', that is
// not grey, not too dark or bright, and not close to any excluded color.
// Excluded entries that do not parse as hex are ignored.  A nil rnd uses
// the package source.
func Generate(excluded []string, rnd *rand.Rand) string {
	intN := rand.IntN
	if rnd != nil {
		intN = rnd.IntN
	}

	for i := 0; i < attempts; i++ {
		c := rgb{intN(256), intN(256), intN(256)}
		if Acceptable(c.hex(), excluded) {
			return c.hex()
		}
	}
	return Fallback
}

// Acceptable reports whether hex passes the same checks Generate applies.
func Acceptable(hex string, excluded []string) bool {
	c, ok := parse(hex)
	if !ok {
		return false
	}
	if c.spread() < minSpread {
		return false
	}
	if b := c.brightness(); b < minBrightness || b > maxBrightness {
		return false
	}
	for _, h := range append(append([]string{}, Reserved...), excluded...) {
		if o, ok := parse(h); ok && c.distance(o) < minDistance {
			return false
		}
	}
	return true
}

func parse(hex string) (rgb, bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{int(v >> 16 & 0xFF), int(v >> 8 & 0xFF), int(v & 0xFF)}, true
}

func (c rgb) hex() string { return fmt.Sprintf("%02X%02X%02X", c.r, c.g, c.b) }

func (c rgb) spread() int {
	return max(c.r, c.g, c.b) - min(c.r, c.g, c.b)
}

func (c rgb) brightness() float64 {
	return 0.299*float64(c.r) + 0.587*float64(c.g) + 0.114*float64(c.b)
}

func (c rgb) distance(o rgb) float64 {
	dr, dg, db := float64(c.r-o.r), float64(c.g-o.g), float64(c.b-o.b)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
