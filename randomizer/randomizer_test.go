package randomizer_test

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/FrauElster/goutil/randomizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomizer_Int(t *testing.T) {
	r := randomizer.NewSeeded(1)

	for i := 0; i < 100; i++ {
		v := r.Int(5, 10)
		assert.GreaterOrEqual(t, v, 5)
		assert.LessOrEqual(t, v, 10)
	}

	// Reversed bounds are tolerated.
	v := r.Int(10, 5)
	assert.GreaterOrEqual(t, v, 5)
	assert.LessOrEqual(t, v, 10)
}

func TestRandomizer_Float(t *testing.T) {
	r := randomizer.NewSeeded(1)

	for i := 0; i < 100; i++ {
		v := r.Float(0.5, 2.5)
		assert.GreaterOrEqual(t, v, 0.5)
		assert.LessOrEqual(t, v, 2.5)
	}
}

func TestRandomizer_String(t *testing.T) {
	r := randomizer.NewSeeded(1)

	s := r.String(32, randomizer.StringOptions{})
	assert.Len(t, s, 32)

	digitsOnly := r.String(64, randomizer.StringOptions{
		NoLowerCase: true,
		NoUpperCase: true,
		NoSpecials:  true,
	})

	assert.Len(t, digitsOnly, 64)
	assert.NotEqual(t, -1, strings.IndexFunc(digitsOnly, func(c rune) bool {
		return c >= '0' && c <= '9'
	}))

	for _, c := range digitsOnly {
		assert.True(t, c >= '0' && c <= '9', "unexpected character %q", c)
	}
}

func TestRandomizer_Time(t *testing.T) {
	r := randomizer.NewSeeded(1)

	min := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	max := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 20; i++ {
		v := r.Time(min, max)
		assert.False(t, v.Before(min))
		assert.False(t, v.After(max))
	}
}

func TestRandomizer_Bool(t *testing.T) {
	r := randomizer.NewSeeded(1)

	assert.False(t, r.Bool(0))
	assert.True(t, r.Bool(1))

	trues := 0

	for i := 0; i < 1000; i++ {
		if r.Bool(0.5) {
			trues++
		}
	}

	assert.Greater(t, trues, 300)
	assert.Less(t, trues, 700)
}

func TestRandomizer_IP(t *testing.T) {
	r := randomizer.NewSeeded(1)

	ip := net.ParseIP(r.IPv4())
	require.NotNil(t, ip)
	assert.NotNil(t, ip.To4())

	ip = net.ParseIP(r.IPv6())
	require.NotNil(t, ip)
	assert.Nil(t, ip.To4())
}

func TestRandomizer_Fact(t *testing.T) {
	r := randomizer.NewSeeded(1)

	assert.NotEmpty(t, r.Fact())
}

func TestUnique(t *testing.T) {
	r := randomizer.NewSeeded(1)

	seen := map[int]bool{}

	// A small value space is fully drained by unique draws.
	for i := 0; i < 6; i++ {
		v := randomizer.Unique(r, "die", func() int {
			return r.Int(1, 6)
		})

		assert.False(t, seen[v], "value %d drawn twice", v)
		seen[v] = true
	}

	assert.Len(t, seen, 6)

	// The space is exhausted, Unique gives up after its retry limit
	// and returns a duplicate instead of spinning forever.
	v := randomizer.Unique(r, "die", func() int {
		return r.Int(1, 6)
	})
	assert.True(t, seen[v])
}

func TestUnique_independentLabels(t *testing.T) {
	r := randomizer.NewSeeded(1)

	a := randomizer.Unique(r, "a", func() int { return 1 })
	b := randomizer.Unique(r, "b", func() int { return 1 })

	assert.Equal(t, a, b, "labels do not share uniqueness scopes")
}
