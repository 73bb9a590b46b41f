// internal/domain/catalog/derive.go
package catalog

import (
	"math"
	"math/rand/v2"
	"time"
)

// Derivation modes for rating and discount
const (
	ModeStable = "stable"
	ModeRandom = "random"
)

const (
	minRating          = 3.5
	maxRating          = 5.0
	discountChance     = 0.3
	minDiscount        = 5
	maxDiscountExclude = 30
)

// Deriver assigns the display fields a catalog source may omit.
// In stable mode the values depend only on the seed and product ID, so they
// survive reloads. In random mode they are re-rolled on every load.
type Deriver struct {
	mode string
	seed uint64
	rng  *rand.Rand
}

// NewDeriver creates a deriver for mode ("stable" or "random")
func NewDeriver(mode string, seed int64) *Deriver {
	d := &Deriver{mode: mode, seed: uint64(seed)}
	if mode == ModeRandom {
		d.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), d.seed))
	}
	return d
}

func (d *Deriver) source(id int) *rand.Rand {
	if d.mode == ModeRandom {
		return d.rng
	}
	return rand.New(rand.NewPCG(d.seed, uint64(int64(id))))
}

// Apply converts the source records into products, filling rating and
// discount where absent and stamping the load position.
func (d *Deriver) Apply(src []sourceProduct) []Product {
	out := make([]Product, len(src))
	for i, sp := range src {
		rng := d.source(sp.ID)

		p := Product{
			ID:            sp.ID,
			Name:          sp.Name,
			Category:      sp.Category,
			Price:         sp.Price,
			Image:         sp.Image,
			Description:   sp.Description,
			Details:       map[string]string(sp.Details),
			IsNew:         sp.IsNew,
			OriginalIndex: i,
		}

		// A zero rating counts as absent.
		if sp.Rating.set && sp.Rating.value != 0 {
			p.Rating = sp.Rating.value
		} else {
			p.Rating = deriveRating(rng)
		}

		if sp.Discount.set {
			p.Discount = int(sp.Discount.value)
		} else {
			p.Discount = deriveDiscount(rng)
		}

		out[i] = p
	}
	return out
}

func deriveRating(rng *rand.Rand) float64 {
	r := minRating + rng.Float64()*(maxRating-minRating)
	return math.Round(r*10) / 10
}

func deriveDiscount(rng *rand.Rand) int {
	if rng.Float64() >= discountChance {
		return 0
	}
	return minDiscount + rng.IntN(maxDiscountExclude-minDiscount)
}
