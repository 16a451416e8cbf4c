package hll

import "sort"

// sparseChunkWidth is the bit width of one (index,value) pair on the
// wire: log2m bits of register index followed by regwidth bits of value.
// When log2m+regwidth is at least 8, padding bits on the final byte can
// never accumulate into a spurious extra chunk, which is what lets
// decodeSparseToDense derive n_filled purely from the payload's byte
// length. Narrower chunks are possible (log2m may be as small as 0); the
// zero padding then decodes as extra (index 0, value 0) pairs, which
// leave the registers unchanged.
func sparseChunkWidth(p *params) int { return p.log2m + p.regwidth }

// encodeSparse writes every non-zero register in reg as a sorted
// (index,value) pair list. Sparse is a wire-only form: there is no
// in-memory sparse type, so this operates directly on a materialized
// denseRegisters bank.
func encodeSparse(p *params, reg denseRegisters) []byte {
	chunkWidth := sparseChunkWidth(p)

	type pair struct {
		index int
		value byte
	}

	var filled []pair
	m := 1 << uint(p.log2m)
	for i := 0; i < m; i++ {
		if v := reg.get(i, p.regwidth); v != 0 {
			filled = append(filled, pair{i, v})
		}
	}

	sort.Slice(filled, func(i, j int) bool { return filled[i].index < filled[j].index })

	out := make([]byte, divideBy8RoundUp(chunkWidth*len(filled)))
	addr := 0
	for _, f := range filled {
		writeBits(out, addr, (uint64(f.index)<<uint(p.regwidth))|uint64(f.value), chunkWidth)
		addr += chunkWidth
	}
	return out
}

// sparseFilledCount derives n_filled: the number of whole chunkWidth-bit
// pairs that fit in the payload. When chunkWidth >= 8, any leftover
// padding bits are always fewer than a full chunk; otherwise the count
// may include all-zero padding pairs.
func sparseFilledCount(p *params, body []byte) int {
	chunkWidth := sparseChunkWidth(p)
	return (8 * len(body)) / chunkWidth
}

// decodeSparseToDense reads a Sparse body and materializes it as a fresh
// Dense register bank, since Sparse is never a stored in-memory
// representation.
func decodeSparseToDense(p *params, body []byte) (denseRegisters, error) {
	chunkWidth := sparseChunkWidth(p)
	regMask := byte((1 << uint(p.regwidth)) - 1)

	numFilled := sparseFilledCount(p, body)

	reg := newDenseRegisters(p)
	for i := 0; i < numFilled; i++ {
		chunk := readBits(body, i*chunkWidth, chunkWidth)
		index := int(chunk >> uint(p.regwidth))
		value := byte(chunk) & regMask

		if index < 0 || index >= (1<<uint(p.log2m)) {
			return nil, errDataf("sparse register index %d out of range for m=%d", index, 1<<uint(p.log2m))
		}

		reg.setIfGreater(p, index, value)
	}

	return reg, nil
}

// sparseSizeInBytes returns the number of registers set and the resulting
// encoded size, used by packedSize to decide between Sparse and Dense
// without actually building the Sparse bytes.
func sparseSizeInBytes(p *params, reg denseRegisters) (filled int, sizeBytes int) {
	m := 1 << uint(p.log2m)
	for i := 0; i < m; i++ {
		if reg.get(i, p.regwidth) != 0 {
			filled++
		}
	}
	chunkWidth := sparseChunkWidth(p)
	return filled, divideBy8RoundUp(chunkWidth * filled)
}
