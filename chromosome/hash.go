package chromosome

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Hash computes a deterministic content digest of a gene sequence. It is
// used both as the fitness cache key and as the input to cardinality
// estimation, so it must be stable across runs given identical genes.
// Floating-point alleles are hashed via their raw bit pattern, so identical
// bit patterns always hash equal regardless of how they were produced; the
// bits are not normalised, so 0 and -0, or NaNs with different payloads,
// hash apart.
func Hash[T any](genes []T) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, gene := range genes {
		switch v := any(gene).(type) {
		case bool:
			if v {
				buf[0] = 1
			} else {
				buf[0] = 0
			}
			_, _ = d.Write(buf[:1])
		case int:
			binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
			_, _ = d.Write(buf[:])
		case int8:
			binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
			_, _ = d.Write(buf[:])
		case int16:
			binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
			_, _ = d.Write(buf[:])
		case int32:
			binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
			_, _ = d.Write(buf[:])
		case int64:
			binary.LittleEndian.PutUint64(buf[:], uint64(v))
			_, _ = d.Write(buf[:])
		case uint:
			binary.LittleEndian.PutUint64(buf[:], uint64(v))
			_, _ = d.Write(buf[:])
		case uint8:
			binary.LittleEndian.PutUint64(buf[:], uint64(v))
			_, _ = d.Write(buf[:])
		case uint16:
			binary.LittleEndian.PutUint64(buf[:], uint64(v))
			_, _ = d.Write(buf[:])
		case uint32:
			binary.LittleEndian.PutUint64(buf[:], uint64(v))
			_, _ = d.Write(buf[:])
		case uint64:
			binary.LittleEndian.PutUint64(buf[:], v)
			_, _ = d.Write(buf[:])
		case float32:
			binary.LittleEndian.PutUint32(buf[:4], math.Float32bits(v))
			_, _ = d.Write(buf[:4])
		case float64:
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = d.Write(buf[:])
		case string:
			_, _ = d.WriteString(v)
			_, _ = d.Write([]byte{0})
		default:
			// Unsupported allele kind; fall back to a formatted
			// representation so hashing still terminates deterministically.
			fmt.Fprintf(d, "%v|", v)
		}
	}
	return d.Sum64()
}
