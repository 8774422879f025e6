package constraint

import (
	"bytes"
	"math"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func samples() *Problem {
	p := NewProblem()
	p.AddVariable(Continuous, math.Inf(-1), math.Inf(1))
	p.AddVariable(Integer, -3, 12)
	p.AddVariable(Binary, 0, 1)
	p.AddConstraint(NewLinear([]Term{{0, 1.5}, {1, -2}}, LessEqual, 4))
	p.AddConstraint(NewLinear([]Term{{1, 1}, {2, 1}}, GreaterEqual, 1))
	p.AddConstraint(NewLinear([]Term{{2, 7}}, Equal, 0))
	p.SetObjective(NewObjective([]Term{{0, 1}, {1, 2}, {2, -0.5}}, Maximize))
	return p
}

func TestSerializationRoundTrip(t *testing.T) {
	assert := require.New(t)
	p := samples()

	var buf bytes.Buffer
	written, err := p.WriteTo(&buf)
	assert.NoError(err)
	assert.Equal(int64(buf.Len()), written)

	var decoded Problem
	read, err := decoded.ReadFrom(&buf)
	assert.NoError(err)
	assert.Equal(written, read)

	if diff := cmp.Diff(p, &decoded, cmp.AllowUnexported(Problem{})); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSerializationDeterministic(t *testing.T) {
	assert := require.New(t)
	p := samples()

	var a, b bytes.Buffer
	_, err := p.WriteTo(&a)
	assert.NoError(err)
	_, err = p.WriteTo(&b)
	assert.NoError(err)
	assert.True(bytes.Equal(a.Bytes(), b.Bytes()))
}

func TestSerializationHeader(t *testing.T) {
	assert := require.New(t)

	write := func(version string) *bytes.Buffer {
		em, err := cbor.CoreDetEncOptions().EncMode()
		assert.NoError(err)
		var buf bytes.Buffer
		assert.NoError(em.NewEncoder(&buf).Encode(serialized{GolpVersion: version}))
		return &buf
	}

	var p Problem
	_, err := p.ReadFrom(write("99.0.0"))
	assert.Error(err, "a newer major version must be rejected")

	_, err = p.ReadFrom(write("not-a-version"))
	assert.Error(err)

	// minor mismatch only warns
	_, err = p.ReadFrom(write("0.0.1"))
	assert.NoError(err)
}
