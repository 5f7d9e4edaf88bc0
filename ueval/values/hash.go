package values

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

func hashTag(kind ValueKind) uint64 {
	return xxhash.Sum64([]byte{byte(kind)})
}

func hashUint64(kind ValueKind, payload uint64) uint64 {
	var buf [9]byte
	buf[0] = byte(kind)
	binary.LittleEndian.PutUint64(buf[1:], payload)
	return xxhash.Sum64(buf[:])
}

func hashFloat(kind ValueKind, typ NumericType, payload float64) uint64 {
	return combineHashes(hashUint64(kind, math.Float64bits(payload)), uint64(typ))
}

// Strings are separated by a zero byte so that ("ab", "c") and ("a", "bc") differ.
func hashStrings(kind ValueKind, parts ...string) uint64 {
	digest := xxhash.New()
	_, _ = digest.Write([]byte{byte(kind)})
	for _, part := range parts {
		_, _ = digest.WriteString(part)
		_, _ = digest.Write([]byte{0})
	}
	return digest.Sum64()
}

// Order sensitive.
func combineHashes(hashes ...uint64) uint64 {
	buf := make([]byte, 8*len(hashes))
	for idx, hash := range hashes {
		binary.LittleEndian.PutUint64(buf[idx*8:], hash)
	}
	return xxhash.Sum64(buf)
}

// Order insensitive, used for sets.
func unorderedHash(kind ValueKind, hashes ...uint64) uint64 {
	var sum uint64
	for _, hash := range hashes {
		sum += hash
	}
	return hashUint64(kind, sum)
}
