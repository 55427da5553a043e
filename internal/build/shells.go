package build

import (
	"math"
	"math/rand"
	"sync"
)

// Placement picks the orbit plane (0, 1 or 2) and out-of-plane lift for
// electron k of a shell.
type Placement interface {
	Place(shell, k int) (plane int, lift float64)
}

// RoundRobinPlacement cycles planes by electron index with no lift. It is
// fully deterministic.
type RoundRobinPlacement struct{}

func (RoundRobinPlacement) Place(_, k int) (int, float64) { return k % 3, 0 }

type randomPlacement struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// RandomPlacement scatters electrons over the three planes with a small lift
// in [-0.1, 0.1). Layouts repeat only for the same seed.
func RandomPlacement(seed int64) Placement {
	return &randomPlacement{rng: rand.New(rand.NewSource(seed))}
}

func (p *randomPlacement) Place(_, _ int) (int, float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(3), (p.rng.Float64() - 0.5) * 0.2
}

type ElectronLayout struct {
	Angle float64
	Plane int
	Lift  float64
}

type ShellLayout struct {
	Radius    float64
	Speed     float64
	Electrons []ElectronLayout
}

// LayoutShells places the electrons of each shell. Shell i sits at
// BaseRadius + (i+1)*ShellSpacing and turns at 0.5/(i+1) rad/s.
func LayoutShells(occupancy []int, opts Options) []ShellLayout {
	opts = opts.withDefaults()
	out := make([]ShellLayout, len(occupancy))
	for i, count := range occupancy {
		sl := ShellLayout{
			Radius: opts.BaseRadius + float64(i+1)*opts.ShellSpacing,
			Speed:  0.5 / float64(i+1),
		}
		for k := 0; k < count; k++ {
			plane, lift := opts.Placement.Place(i, k)
			sl.Electrons = append(sl.Electrons, ElectronLayout{
				Angle: 2 * math.Pi * float64(k) / float64(count),
				Plane: plane,
				Lift:  lift,
			})
		}
		out[i] = sl
	}
	return out
}
