package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invertedv/chfs"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"c2016it_1", "c2016it"},
		{"c2016it_6", "c2016it"},
		{"d4103it_5", "d4103it"},
		{"b3031ait_2", "b3031ait"},
		{"c7062it", "c7062it"},
		{"k1101it", "k1101it"},
	}

	for _, tst := range tests {
		assert.Equal(t, tst.out, Normalize(tst.in))
	}
}

func TestResolve(t *testing.T) {
	// bracket values straight from the questionnaire
	assert.Equal(t, 5000.0, Resolve(1, "c7060it"))
	assert.Equal(t, 7500000.0, Resolve(11, "c7060it"))
	assert.Equal(t, 20000.0, Resolve(2, "c2016it_3"))
	assert.Equal(t, 30000000.0, Resolve(13, "c2016it_1"))
	assert.Equal(t, 50000.0, Resolve(1, "c2064it_1"))
	assert.Equal(t, 25000.0, Resolve(1, "c3002ait_4"))
	assert.Equal(t, 60.5, Resolve(2, "c1000bbit"))
	assert.Equal(t, 2500.0, Resolve(1, "k1101it"))
	assert.Equal(t, 15000000.0, Resolve(11, "k2102cit"))
}

func TestResolve_Missing(t *testing.T) {
	// missing code stays missing
	assert.True(t, chfs.IsMissing(Resolve(chfs.Missing(), "c7060it")))

	// codes outside the table resolve to missing, never 0 or a neighbor
	assert.True(t, chfs.IsMissing(Resolve(0, "c7060it")))
	assert.True(t, chfs.IsMissing(Resolve(12, "c7060it")))
	assert.True(t, chfs.IsMissing(Resolve(-3, "c7060it")))
	assert.True(t, chfs.IsMissing(Resolve(2.5, "c7060it")))

	// fields with no bracket table resolve to missing
	assert.True(t, chfs.IsMissing(Resolve(1, "b2003dit")))
	assert.True(t, chfs.IsMissing(Resolve(1, "c2023dit")))
	assert.True(t, chfs.IsMissing(Resolve(1, "nosuchfield")))
}

func TestResolve_TableGaps(t *testing.T) {
	// the instrument skips code 4 in the f4005 and f4008 tables
	assert.Equal(t, 400.0, Resolve(3, "f4005it"))
	assert.True(t, chfs.IsMissing(Resolve(4, "f4005it")))
	assert.Equal(t, 750.0, Resolve(5, "f4005it"))

	assert.Equal(t, 4000.0, Resolve(3, "f4008it"))
	assert.True(t, chfs.IsMissing(Resolve(4, "f4008it")))
	assert.Equal(t, 7500.0, Resolve(5, "f4008it"))
}

func TestBound(t *testing.T) {
	assert.True(t, Bound("c2016it_2"))
	assert.True(t, Bound("c7062it"))
	assert.False(t, Bound("b2003dit"))
	assert.False(t, Bound("c2016_2")) // exact fields are not interval fields
}
