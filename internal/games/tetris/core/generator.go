package core

import (
	"fmt"
	"slices"
)

// Generator is an immutable sequence of values. Current is the next value to
// be dealt; Advance returns the generator positioned after it.
type Generator[T any] interface {
	Current() T
	Advance() Generator[T]
}

// PieceGenerator deals piece prototypes.
type PieceGenerator = Generator[*PiecePrototype]

// Peek returns the next n values of g without consuming them.
func Peek[T any](g Generator[T], n int) []T {
	out := make([]T, 0, max(n, 0))
	for range n {
		out = append(out, g.Current())
		g = g.Advance()
	}
	return out
}

// RandomGenerator draws uniformly from the pool with replacement.
type RandomGenerator[T any] struct {
	pool []T
	rng  Random
}

// NewRandomGenerator creates a uniform generator over pool.
func NewRandomGenerator[T any](pool []T, rng Random) (*RandomGenerator[T], error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("random generator: %w", ErrEmptyPool)
	}
	return &RandomGenerator[T]{pool: slices.Clone(pool), rng: rng}, nil
}

// Current implements Generator.
func (g *RandomGenerator[T]) Current() T {
	return g.pool[g.rng.Intn(len(g.pool))]
}

// Advance implements Generator.
func (g *RandomGenerator[T]) Advance() Generator[T] {
	return &RandomGenerator[T]{pool: g.pool, rng: g.rng.Next()}
}

// BagGenerator deals every pool element exactly once per cycle, in a
// random order, then refills.
type BagGenerator[T any] struct {
	pool      []T
	remaining []T
	rng       Random
}

// NewBagGenerator creates a bag generator over pool.
func NewBagGenerator[T any](pool []T, rng Random) (*BagGenerator[T], error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("bag generator: %w", ErrEmptyPool)
	}
	p := slices.Clone(pool)
	return &BagGenerator[T]{pool: p, remaining: p, rng: rng}, nil
}

// Current implements Generator.
func (g *BagGenerator[T]) Current() T {
	return g.remaining[g.rng.Intn(len(g.remaining))]
}

// Advance implements Generator.
func (g *BagGenerator[T]) Advance() Generator[T] {
	next := &BagGenerator[T]{pool: g.pool, rng: g.rng.Next()}
	if len(g.remaining) == 1 {
		next.remaining = g.pool
		return next
	}
	idx := g.rng.Intn(len(g.remaining))
	next.remaining = slices.Delete(slices.Clone(g.remaining), idx, idx+1)
	return next
}

// Remaining returns how many values are left before the next refill.
func (g *BagGenerator[T]) Remaining() int {
	return len(g.remaining)
}

// OrderedGenerator cycles through the pool in order.
type OrderedGenerator[T any] struct {
	pool  []T
	index int
}

// NewOrderedGenerator creates a cycling generator over pool.
func NewOrderedGenerator[T any](pool []T) (*OrderedGenerator[T], error) {
	if len(pool) == 0 {
		return nil, fmt.Errorf("ordered generator: %w", ErrEmptyPool)
	}
	return &OrderedGenerator[T]{pool: slices.Clone(pool)}, nil
}

// Current implements Generator.
func (g *OrderedGenerator[T]) Current() T {
	return g.pool[g.index]
}

// Advance implements Generator.
func (g *OrderedGenerator[T]) Advance() Generator[T] {
	return &OrderedGenerator[T]{pool: g.pool, index: (g.index + 1) % len(g.pool)}
}

// NewPieceGenerator builds a generator by name: "bag", "random" or "ordered".
func NewPieceGenerator(kind string, pool []*PiecePrototype, rng Random) (PieceGenerator, error) {
	var (
		gen PieceGenerator
		err error
	)
	switch kind {
	case "bag":
		var g *BagGenerator[*PiecePrototype]
		g, err = NewBagGenerator(pool, rng)
		gen = g
	case "random":
		var g *RandomGenerator[*PiecePrototype]
		g, err = NewRandomGenerator(pool, rng)
		gen = g
	case "ordered":
		var g *OrderedGenerator[*PiecePrototype]
		g, err = NewOrderedGenerator(pool)
		gen = g
	default:
		return nil, fmt.Errorf("core: unknown generator %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return gen, nil
}
