package minify

import "encoding/binary"

// Compression pipeline: Finder -> PacketCodec -> ArithmeticCoder on
// encode, the inverse on decode. Container layout:
//
//	offset  size  field
//	0       2     window_size, little-endian u16
//	2       4     payloadLen, little-endian u32 (payload byte count before arithmetic coding)
//	6       rest  arithmetic-coded payload
//
// The payload, once arithmetic-decoded, is a byte-aligned header of five
// distance-coded stream lengths followed by TYPE‖LITERAL_MSB‖LITERAL‖SIZE‖OFFSET.

const containerHeaderLen = 2 + 4

// estimateCompressSize sizes the five per-stream scratch buffers used
// during encoding, generously enough that no stream ever overflows.
func estimateCompressSize(inputSize int) int {
	n := inputSize
	if n < 4096 {
		n = 4096
	}
	return n * 4
}

// Compress runs the full encode pipeline over input, returning a
// self-contained container. opts may be nil (default window size).
func Compress(input []byte, opts *CompressOptions) ([]byte, error) {
	if len(input) == 0 {
		return nil, nil
	}

	window := defaultWindowSize
	if opts != nil {
		window = opts.WindowSize
		if window == 0 {
			window = defaultWindowSize
		}
	}
	if window < 1 || window > maxWindowSize {
		return nil, ErrInvalidWindowSize
	}

	streamBufSize := estimateCompressSize(len(input))
	typeE := NewBitEmitter(make([]byte, streamBufSize))
	msbE := NewBitEmitter(make([]byte, streamBufSize))
	litE := NewBitEmitter(make([]byte, streamBufSize))
	sizeE := NewBitEmitter(make([]byte, streamBufSize))
	offE := NewBitEmitter(make([]byte, streamBufSize))

	mf := newMatchFinder(input)
	defer mf.release()
	var ring distanceRing
	events := mf.parse(&ring)

	enc := newPacketEncoder(typeE, msbE, litE, sizeE, offE)
	for _, ev := range events {
		enc.encode(input, ev)
	}

	typeE.EmitTail()
	typeBytes := typeE.Bytes()
	msbE.EmitTail()
	msbBytes := msbE.Bytes()
	litE.EmitTail()
	litBytes := litE.Bytes()
	sizeE.EmitTail()
	sizeBytes := sizeE.Bytes()
	offE.EmitTail()
	offBytes := offE.Bytes()

	headerBuf := make([]byte, 64)
	headerE := NewBitEmitter(headerBuf)
	encodeDistance(headerE, uint32(len(typeBytes))+1)
	encodeDistance(headerE, uint32(len(msbBytes))+1)
	encodeDistance(headerE, uint32(len(litBytes))+1)
	encodeDistance(headerE, uint32(len(sizeBytes))+1)
	encodeDistance(headerE, uint32(len(offBytes))+1)
	headerE.EmitTail()
	headerBytes := headerE.Bytes()

	payload := make([]byte, 0, len(headerBytes)+len(typeBytes)+len(msbBytes)+len(litBytes)+len(sizeBytes)+len(offBytes))
	payload = append(payload, headerBytes...)
	payload = append(payload, typeBytes...)
	payload = append(payload, msbBytes...)
	payload = append(payload, litBytes...)
	payload = append(payload, sizeBytes...)
	payload = append(payload, offBytes...)

	encoded := arithmeticEncode(payload, window)

	out := make([]byte, containerHeaderLen+len(encoded))
	binary.LittleEndian.PutUint16(out[0:2], uint16(window))
	binary.LittleEndian.PutUint32(out[2:6], uint32(len(payload)))
	copy(out[containerHeaderLen:], encoded)
	return out, nil
}

// Decompress reverses Compress. opts is required: OutLen must be set to
// the original decompressed size.
func Decompress(input []byte, opts *DecompressOptions) ([]byte, error) {
	if len(input) == 0 {
		return []byte{}, nil
	}
	if opts == nil {
		return nil, ErrOptionsRequired
	}
	if opts.MaxInputSize > 0 && len(input) > opts.MaxInputSize {
		return nil, ErrMalformedInput
	}
	if len(input) < containerHeaderLen {
		return nil, ErrMalformedInput
	}

	window := int(binary.LittleEndian.Uint16(input[0:2]))
	payloadLen := int(binary.LittleEndian.Uint32(input[2:6]))
	if window < 1 || window > maxWindowSize {
		return nil, ErrMalformedInput
	}
	if payloadLen < 0 {
		return nil, ErrMalformedInput
	}

	payload := make([]byte, payloadLen)
	arithmeticDecode(payload, input[containerHeaderLen:], window)

	headerStream := NewBitStream(payload)
	typeLen := int(decodeDistance(headerStream)) - 1
	msbLen := int(decodeDistance(headerStream)) - 1
	litLen := int(decodeDistance(headerStream)) - 1
	sizeLen := int(decodeDistance(headerStream)) - 1
	offLen := int(decodeDistance(headerStream)) - 1
	if typeLen < 0 || msbLen < 0 || litLen < 0 || sizeLen < 0 || offLen < 0 {
		return nil, ErrMalformedInput
	}

	headerBitLen := headerStream.pos
	headerByteLen := (headerBitLen + 7) / 8
	if headerByteLen+typeLen+msbLen+litLen+sizeLen+offLen > len(payload) {
		return nil, ErrMalformedInput
	}

	off := headerByteLen
	typeBytes := payload[off : off+typeLen]
	off += typeLen
	msbBytes := payload[off : off+msbLen]
	off += msbLen
	litBytes := payload[off : off+litLen]
	off += litLen
	sizeBytes := payload[off : off+sizeLen]
	off += sizeLen
	offBytes := payload[off : off+offLen]

	dec := newPacketDecoder(
		NewBitStream(typeBytes),
		NewBitStream(msbBytes),
		NewBitStream(litBytes),
		NewBitStream(sizeBytes),
		NewBitStream(offBytes),
	)

	dst := make([]byte, opts.OutLen)
	if err := dec.decode(dst); err != nil {
		return nil, err
	}
	return dst, nil
}
