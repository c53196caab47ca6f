package chromosome

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashDeterministic(t *testing.T) {
	a := Hash([]int{1, 2, 3})
	b := Hash([]int{1, 2, 3})
	assert.Equal(t, a, b)
}

func TestHashDistinguishesOrder(t *testing.T) {
	a := Hash([]int{1, 2, 3})
	b := Hash([]int{3, 2, 1})
	assert.NotEqual(t, a, b)
}

func TestHashDistinguishesValues(t *testing.T) {
	a := Hash([]int{1, 2, 3})
	b := Hash([]int{1, 2, 4})
	assert.NotEqual(t, a, b)
}

func TestHashBool(t *testing.T) {
	a := Hash([]bool{true, false, true})
	b := Hash([]bool{true, false, true})
	c := Hash([]bool{false, false, true})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestHashFloatEqualValuesHashEqual(t *testing.T) {
	a := Hash([]float64{1.5, 2.25})
	b := Hash([]float64{1.5, 2.25})
	assert.Equal(t, a, b)
}

func TestHashFloatDistinguishesNegativeZero(t *testing.T) {
	a := Hash([]float64{0})
	b := Hash([]float64{math.Copysign(0, -1)})
	assert.NotEqual(t, a, b, "raw bit-pattern hashing should distinguish +0 from -0")
}

func TestHashString(t *testing.T) {
	a := Hash([]string{"ab", "c"})
	b := Hash([]string{"a", "bc"})
	assert.NotEqual(t, a, b, "the separator byte must prevent boundary-shift collisions")
}

func TestHashEmpty(t *testing.T) {
	a := Hash([]int{})
	b := Hash([]int{})
	assert.Equal(t, a, b)
}
