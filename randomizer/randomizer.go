// Package randomizer produces random test data: names, numbers, strings,
// addresses, with optional uniqueness across calls.
package randomizer

import (
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// iterLimit bounds retries when hunting for an unused unique value.
const iterLimit = 1000

var facts = []string{
	"Some cats are allergic to humans",
	"A chef's hat has exactly 100 folds",
	"High heels were originally worn by men",
	"Hot water freezes faster than cold water",
	"Dolphins have names for each other",
	"The national animal of Scotland is a unicorn",
	"Koalas have fingerprints",
	"Humans sneeze faster than cheetahs",
	"Sharks have been around longer than trees",
	"When hippos are angry, their sweat is red",
	"If you lift a kangaroo's tail, it cannot hop",
	"The Eiffel Tower has 1665 steps",
}

// StringOptions select character classes for String.
//
// Zero value enables everything.
type StringOptions struct {
	NoLowerCase bool
	NoUpperCase bool
	NoDigits    bool
	NoSpecials  bool
}

// Randomizer produces random values, safe for concurrent use.
type Randomizer struct {
	mu   sync.Mutex
	f    *gofakeit.Faker
	seen map[string]map[interface{}]struct{}
}

// New creates a Randomizer with a random seed.
func New() *Randomizer {
	return NewSeeded(0)
}

// NewSeeded creates a Randomizer with a fixed seed for reproducible output.
func NewSeeded(seed uint64) *Randomizer {
	return &Randomizer{
		f:    gofakeit.New(seed),
		seen: map[string]map[interface{}]struct{}{},
	}
}

// Name returns a random person name.
func (r *Randomizer) Name() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.f.Name()
}

// Int returns a random int in [min, max], bounds in any order.
func (r *Randomizer) Int(min, max int) int {
	if min > max {
		min, max = max, min
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.f.IntRange(min, max)
}

// Float returns a random float64 in [min, max), bounds in any order.
func (r *Randomizer) Float(min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.f.Float64Range(min, max)
}

// String returns a random string of length n from the enabled character classes.
func (r *Randomizer) String(n int, o StringOptions) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.f.Password(!o.NoLowerCase, !o.NoUpperCase, !o.NoDigits, !o.NoSpecials, false, n)
}

// Time returns a random time in [min, max).
func (r *Randomizer) Time(min, max time.Time) time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.f.DateRange(min, max)
}

// Bool returns true with the given probability in [0, 1].
func (r *Randomizer) Bool(trueProbability float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.f.Float64Range(0, 1) < trueProbability
}

// IPv4 returns a random IPv4 address.
func (r *Randomizer) IPv4() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.f.IPv4Address()
}

// IPv6 returns a random IPv6 address.
func (r *Randomizer) IPv6() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.f.IPv6Address()
}

// Fact returns a random fun fact.
func (r *Randomizer) Fact() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.f.RandomString(facts)
}

// Unique calls fn until it produces a value not seen under label, giving up
// and returning the last value after 1000 attempts.
func Unique[T comparable](r *Randomizer, label string, fn func() T) T {
	var val T

	for i := 0; i < iterLimit; i++ {
		val = fn()

		r.mu.Lock()

		seen, ok := r.seen[label]
		if !ok {
			seen = map[interface{}]struct{}{}
			r.seen[label] = seen
		}

		if _, dup := seen[val]; !dup {
			seen[val] = struct{}{}
			r.mu.Unlock()

			return val
		}

		r.mu.Unlock()
	}

	return val
}
