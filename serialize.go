package hll

import (
	"encoding/binary"
	"sort"
)

// wireType is the 4-bit type tag in the header's low nibble. Undefined
// is allowed to appear on the wire (type 0): a decoder should accept a
// frame tagged Undefined even though Add/Union never produce one.
type wireType int

const (
	wireUndefined wireType = 0
	wireEmpty     wireType = 1
	wireExplicit  wireType = 2
	wireSparse    wireType = 3
	wireDense     wireType = 4
)

// MaxSerializedBytes bounds the in-memory body of any sketch this library
// will decode (128 KiB).
const MaxSerializedBytes = 128 * 1024

// DecodeSketch parses a byte slice produced by EncodeSketch (or a
// compatible writer) back into a SketchValue. Any version other than 1,
// any unrecognized type, any size mismatch between the header's implied
// parameters and the body length, or a body exceeding MaxSerializedBytes
// fails with ErrData.
func DecodeSketch(b []byte) (*SketchValue, error) {
	if len(b) < 3 {
		return nil, ErrInsufficientBytes
	}

	version := int(b[0] >> 4)
	if version != 1 {
		return nil, errDataf("unsupported sketch version %d", version)
	}

	typ := wireType(b[0] & 0xf)

	regwidth := int(b[1]>>5) + 1
	log2m := int(b[1] & 0x1f)
	sparseon := b[2]>>6 == 1
	expthresh, err := expthreshDecode(b[2])
	if err != nil {
		return nil, err
	}

	ext := Parameters{
		Log2m:         log2m,
		Regwidth:      regwidth,
		Expthresh:     expthresh,
		SparseEnabled: sparseon,
	}

	internal, err := ext.toInternal()
	if err != nil {
		return nil, err
	}

	body := b[3:]
	if len(body) > MaxSerializedBytes {
		return nil, errDataf("sketch body of %d bytes exceeds %d byte limit", len(body), MaxSerializedBytes)
	}

	switch typ {
	case wireUndefined:
		if len(body) != 0 {
			return nil, errDataf("undefined sketch must have an empty body, got %d bytes", len(body))
		}
		return &SketchValue{p: internal, ext: ext, rep: repUndefined}, nil

	case wireEmpty:
		if len(body) != 0 {
			return nil, errDataf("empty sketch must have an empty body, got %d bytes", len(body))
		}
		return &SketchValue{p: internal, ext: ext, rep: repEmpty}, nil

	case wireExplicit:
		tokens, err := decodeExplicit(body)
		if err != nil {
			return nil, err
		}
		return &SketchValue{p: internal, ext: ext, rep: repExplicit, expl: tokens}, nil

	case wireSparse:
		reg, err := decodeSparseToDense(internal, body)
		if err != nil {
			return nil, err
		}
		return &SketchValue{p: internal, ext: ext, rep: repDense, reg: reg}, nil

	case wireDense:
		reg, err := denseRegistersFromBytes(internal, body)
		if err != nil {
			return nil, err
		}
		return &SketchValue{p: internal, ext: ext, rep: repDense, reg: reg}, nil

	default:
		return nil, errDataf("unrecognized sketch type %d", int(typ))
	}
}

// decodeExplicit reads big-endian 8-byte signed tokens and revalidates
// the strictly-ascending, no-duplicates invariant on the way in, since
// the wire format carries no element count of its own.
func decodeExplicit(body []byte) ([]int64, error) {
	if len(body)%8 != 0 {
		return nil, errDataf("explicit body of %d bytes is not a multiple of 8", len(body))
	}

	tokens := make([]int64, 0, len(body)/8)
	var prev int64
	for i := 0; i < len(body); i += 8 {
		v := int64(binary.BigEndian.Uint64(body[i : i+8]))
		if i > 0 && v <= prev {
			return nil, errDataf("explicit tokens must be strictly ascending, got %d after %d", v, prev)
		}
		tokens = append(tokens, v)
		prev = v
	}
	return tokens, nil
}

// EncodeSketch serializes s, choosing between Sparse and Dense for a
// Dense-representation sketch according to cfg's Sparse/Dense selection
// rule. PackedSize must mirror this decision exactly, so
// packedTypeAndSize implements both at once and they can never drift
// apart.
func EncodeSketch(s *SketchValue, cfg *Config) []byte {
	typ, bodySize := packedTypeAndSize(s, cfg)

	out := make([]byte, 3+bodySize)
	out[0] = byte(cfg.OutputVersion()<<4) | byte(typ)
	out[1] = byte((s.p.regwidth-1)<<5) | byte(s.p.log2m)
	out[2] = packCutoffByte(s.p)

	switch typ {
	case wireExplicit:
		writeExplicit(out[3:], s.expl)
	case wireSparse:
		copy(out[3:], encodeSparse(s.p, s.reg))
	case wireDense:
		s.reg.writeBytes(s.p, out[3:])
	}

	return out
}

// PackedSize returns the number of bytes EncodeSketch(s, cfg) would
// produce, without building them.
func PackedSize(s *SketchValue, cfg *Config) int {
	_, bodySize := packedTypeAndSize(s, cfg)
	return 3 + bodySize
}

// packedTypeAndSize is the single source of truth for the Sparse/Dense
// selection rule: if sparseon is false, always Dense. Otherwise compare
// sparse_bits to dense_bits, or to cfg's max_sparse filled-register
// cutoff if one is configured.
func packedTypeAndSize(s *SketchValue, cfg *Config) (wireType, int) {
	switch s.rep {
	case repUndefined, repEmpty:
		return repToWire(s.rep), 0
	case repExplicit:
		return wireExplicit, 8 * len(s.expl)
	}

	// repDense: decide Sparse vs Dense.
	denseBytes := sizeInBytes(s.p)

	if !s.p.sparseEnabled {
		return wireDense, denseBytes
	}

	filled, sparseBytes := sparseSizeInBytes(s.p, s.reg)

	maxSparse := cfg.MaxSparse()
	chooseSparse := false
	if maxSparse != -1 {
		chooseSparse = filled <= maxSparse
	} else {
		sparseBits := (s.p.log2m + s.p.regwidth) * filled
		denseBits := (1 << uint(s.p.log2m)) * s.p.regwidth
		chooseSparse = sparseBits < denseBits
	}

	if chooseSparse {
		return wireSparse, sparseBytes
	}
	return wireDense, denseBytes
}

func repToWire(r representation) wireType {
	switch r {
	case repUndefined:
		return wireUndefined
	case repEmpty:
		return wireEmpty
	case repExplicit:
		return wireExplicit
	default:
		return wireDense
	}
}

func writeExplicit(out []byte, tokens []int64) {
	sorted := append([]int64(nil), tokens...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i, v := range sorted {
		pos := i * 8
		binary.BigEndian.PutUint64(out[pos:pos+8], uint64(v))
	}
}

// packCutoffByte serializes the header's third byte: sparseon and the
// encoded expthresh.
func packCutoffByte(p *params) byte {
	cutoff := expthreshEncode(p)
	if p.sparseEnabled {
		cutoff |= 1 << 6
	}
	return cutoff
}
