package palette

import (
	"math/rand/v2"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var hexRe = regexp.MustCompile(`^[0-9A-F]{6}$`)

func TestGenerate_Properties(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	var taken []string
	for i := 0; i < 20; i++ {
		c := Generate(taken, rnd)
		assert.Regexp(t, hexRe, c)
		if c == Fallback {
			continue
		}
		assert.True(t, Acceptable(c, taken), c)

		parsed, _ := parse(c)
		assert.GreaterOrEqual(t, parsed.spread(), minSpread)
		assert.GreaterOrEqual(t, parsed.brightness(), float64(minBrightness))
		assert.LessOrEqual(t, parsed.brightness(), float64(maxBrightness))
		for _, o := range taken {
			op, _ := parse(o)
			assert.GreaterOrEqual(t, parsed.distance(op), float64(minDistance))
		}
		taken = append(taken, c)
	}
}

func TestAcceptable(t *testing.T) {
	assert.False(t, Acceptable("808080", nil), "grey")
	assert.False(t, Acceptable("101010", nil), "too dark")
	assert.False(t, Acceptable("F0FFF0", nil), "too bright")
	assert.True(t, Acceptable("E74C3C", nil))
	assert.False(t, Acceptable("E74C3C", []string{"#E54A3A"}), "too close")
	assert.True(t, Acceptable("#3498db", []string{"not-a-color"}))
	assert.False(t, Acceptable("XYZ", nil))
}

func TestGenerate_FallbackWhenEverythingExcluded(t *testing.T) {
	// a dense lattice of excluded colors leaves nothing at distance 60
	var all []string
	for r := 0; r < 256; r += 30 {
		for g := 0; g < 256; g += 30 {
			for b := 0; b < 256; b += 30 {
				all = append(all, rgb{r, g, b}.hex())
			}
		}
	}
	assert.Equal(t, Fallback, Generate(all, rand.New(rand.NewPCG(7, 7))))
}
