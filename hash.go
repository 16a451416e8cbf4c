package hll

import (
	"encoding/binary"

	"github.com/twmb/murmur3"
)

// HashBytes computes a 128-bit MurmurHash3 x64 128 hash of buf seeded with
// seed, and returns the low 64 bits as the element token fed into Add. A
// negative seed is accepted (it's widened to its unsigned 32-bit
// representation, matching the bit pattern an external implementation
// that uses unsigned seeds would produce) but triggers a non-fatal
// Warning, since it signals a likely compatibility mismatch with callers
// that always pass unsigned seeds.
func HashBytes(buf []byte, seed int32) uint64 {
	if seed < 0 {
		warnf("negative hash seed %d; continuing with its unsigned bit pattern", seed)
	}

	lo, _ := murmur3.SeedSum128(uint64(uint32(seed)), uint64(uint32(seed)), buf)
	return lo
}

// HashUint64 hashes the little-endian byte representation of v.
func HashUint64(v uint64, seed int32) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return HashBytes(buf[:], seed)
}

// HashUint32 hashes the little-endian byte representation of v.
func HashUint32(v uint32, seed int32) uint64 {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return HashBytes(buf[:], seed)
}

// HashUint16 hashes the little-endian byte representation of v.
func HashUint16(v uint16, seed int32) uint64 {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return HashBytes(buf[:], seed)
}

// HashUint8 hashes the single byte representation of v.
func HashUint8(v uint8, seed int32) uint64 {
	return HashBytes([]byte{v}, seed)
}
