package meta

import "math/rand"

// Generator allocates chapter UIDs from an injected entropy source, so
// runs are reproducible under test with a fixed seed.
type Generator struct {
	rnd  *rand.Rand
	seen map[int64]bool
}

// NewGenerator returns a UID generator reading from src.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{
		rnd:  rand.New(src),
		seen: map[int64]bool{},
	}
}

// Next returns a fresh non-zero 63-bit UID, distinct from every UID this
// generator has handed out before. Matroska reserves zero.
func (g *Generator) Next() int64 {
	for {
		uid := g.rnd.Int63()
		if uid == 0 || g.seen[uid] {
			continue
		}
		g.seen[uid] = true
		return uid
	}
}

// UIDs returns n fresh pairwise-distinct UIDs.
func (g *Generator) UIDs(n int) []int64 {
	uids := make([]int64, n)
	for i := range uids {
		uids[i] = g.Next()
	}
	return uids
}
