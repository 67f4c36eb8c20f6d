package pe

import "encoding/binary"

// Container wraps a minify-compressed PE payload together with the
// preserved header region it was split from. The stub slot is reserved for
// a self-extraction loader stub; assembling one is out of scope here, so
// Wrap always writes a zero-length stub unless the caller supplies one of
// its own.
//
//	offset  size  field
//	0       4     magic "MNFY"
//	4       4     headerLen, little-endian u32
//	8       4     stubLen, little-endian u32
//	12      4     payloadLen, little-endian u32 (original decompressed size)
//	16      ...   header bytes, then stub bytes, then compressed payload
const containerMagic = "MNFY"
const containerHeaderLen = 4 + 4 + 4 + 4

// Wrap assembles a container from a preserved PE header region, an optional
// loader stub (may be nil), and a minify-compressed payload. payloadLen is
// the original, uncompressed payload length, recorded so the caller can
// build DecompressOptions without a separate side channel.
func Wrap(header, stub, compressed []byte, payloadLen int) []byte {
	out := make([]byte, containerHeaderLen+len(header)+len(stub)+len(compressed))
	copy(out[0:4], containerMagic)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(header)))
	binary.LittleEndian.PutUint32(out[8:12], uint32(len(stub)))
	binary.LittleEndian.PutUint32(out[12:16], uint32(payloadLen))

	off := containerHeaderLen
	off += copy(out[off:], header)
	off += copy(out[off:], stub)
	copy(out[off:], compressed)
	return out
}

// Unwrap reverses Wrap, returning the header region, the stub (possibly
// empty), the compressed payload, and the original payload length.
func Unwrap(data []byte) (header, stub, compressed []byte, payloadLen int, err error) {
	if len(data) < containerHeaderLen || string(data[0:4]) != containerMagic {
		return nil, nil, nil, 0, ErrMalformedContainer
	}
	headerLen := binary.LittleEndian.Uint32(data[4:8])
	stubLen := binary.LittleEndian.Uint32(data[8:12])
	payloadLen = int(binary.LittleEndian.Uint32(data[12:16]))

	off := containerHeaderLen
	end := off + int(headerLen)
	if end < off || end > len(data) {
		return nil, nil, nil, 0, ErrMalformedContainer
	}
	header = data[off:end]

	off = end
	end = off + int(stubLen)
	if end < off || end > len(data) {
		return nil, nil, nil, 0, ErrMalformedContainer
	}
	stub = data[off:end]

	compressed = data[end:]
	return header, stub, compressed, payloadLen, nil
}
