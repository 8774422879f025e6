package constraint

import (
	"fmt"
	"io"

	"github.com/blang/semver/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/funkelab/golp"
	"github.com/funkelab/golp/logger"
)

// serialized mirrors Problem with exported fields for encoding. The version
// header lets a reader detect blobs written by an incompatible golp.
type serialized struct {
	GolpVersion string
	Variables   []Variable
	Constraints []Linear
	Objective   Objective
}

// WriteTo serializes the problem in deterministic CBOR encoding.
func (p *Problem) WriteTo(w io.Writer) (int64, error) {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, err
	}
	counter := countWriter{w: w}
	encoder := em.NewEncoder(&counter)
	err = encoder.Encode(serialized{
		GolpVersion: golp.Version.String(),
		Variables:   p.variables,
		Constraints: p.constraints,
		Objective:   p.objective,
	})
	return counter.n, err
}

// ReadFrom deserializes a problem written by WriteTo. Blobs written by a
// newer major version of golp are rejected; a minor/patch mismatch only
// logs a warning.
func (p *Problem) ReadFrom(r io.Reader) (int64, error) {
	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecMode()
	if err != nil {
		return 0, err
	}
	counter := countReader{r: r}
	decoder := dm.NewDecoder(&counter)

	var s serialized
	if err := decoder.Decode(&s); err != nil {
		return counter.n, err
	}
	if err := checkSerializationHeader(s.GolpVersion); err != nil {
		return counter.n, err
	}

	p.variables = s.Variables
	p.constraints = s.Constraints
	p.objective = s.Objective
	return counter.n, nil
}

// checkSerializationHeader parses the golp version header and errors for
// illegal values.
func checkSerializationHeader(objectVersionStr string) error {
	binaryVersion := golp.Version
	objectVersion, err := semver.Parse(objectVersionStr)
	if err != nil {
		return fmt.Errorf("when parsing golp version: %w", err)
	}

	if objectVersion.Major > binaryVersion.Major {
		return fmt.Errorf("problem was serialized with golp v%s, binary is v%s", objectVersion, binaryVersion)
	}
	if binaryVersion.Compare(objectVersion) != 0 {
		log := logger.Logger()
		log.Warn().Str("binary", binaryVersion.String()).Str("object", objectVersion.String()).Msg("golp version (binary) mismatch with serialized problem. there are no guarantees on compatibility")
	}
	return nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type countReader struct {
	r io.Reader
	n int64
}

func (c *countReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
