package strata

import (
	"encoding/binary"
	"hash/crc32"
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// crcTable is the IEEE CRC-32 table used for atom names.
var crcTable = crc32.MakeTable(crc32.IEEE)

const (
	// emptySchemaSeed is the hash of every record whose schema declares no fields.
	emptySchemaSeed uint64 = 0xcbf29ce484222325

	// unsetFieldHash stands in for a declared field that has not been set yet.
	unsetFieldHash uint64 = 0x9e3779b97f4a7c15

	// vectorMix is the golden-ratio constant of the sequence hash combiner.
	vectorMix uint64 = 0x9e3779b9
)

// computeCRC computes CRC-32 IEEE of a name.
func computeCRC(name string) uint32 {
	return crc32.Checksum([]byte(name), crcTable)
}

// hashUint hashes a 64-bit word with xxhash over its little-endian bytes.
func hashUint(u uint64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], u)
	return xxhash.Sum64(buf[:])
}

// mixField folds the next declared field's hash into the running record hash.
func mixField(h, field uint64) uint64 {
	return field ^ bits.RotateLeft64(h, 1)
}

// mixTagged combines a tag hash with a payload hash.
func mixTagged(tag uint32, payload uint64) uint64 {
	return uint64(tag) ^ (payload << 1)
}

// mixSequence folds one element hash into a sequence seed.
// The seed starts at the sequence length.
func mixSequence(seed, elem uint64) uint64 {
	return seed ^ (elem + vectorMix + (seed << 6) + (seed >> 2))
}

// fold32 narrows a 64-bit hash for containers keyed by 32-bit hashes.
func fold32(h uint64) uint32 {
	return uint32(h) ^ uint32(h>>32)
}
