package minify

import "testing"

func TestLength_EncodeDecodeRoundTrip(t *testing.T) {
	for length := minMatchLen; length <= maxMatchLen; length++ {
		buf := make([]byte, 8)
		e := NewBitEmitter(buf)
		encodeLength(e, length)
		e.EmitTail()

		s := NewBitStream(e.Bytes())
		if got := decodeLength(s); got != length {
			t.Fatalf("length %d round-tripped to %d", length, got)
		}
	}
}

func TestDistance_EncodeDecodeRoundTrip(t *testing.T) {
	distances := []uint32{1, 2, 3, 4, 5, 8, 16, 100, 1000, 1 << 16, 1 << 20, 1<<31 - 1}
	for _, d := range distances {
		buf := make([]byte, 16)
		e := NewBitEmitter(buf)
		encodeDistance(e, d)
		e.EmitTail()

		s := NewBitStream(e.Bytes())
		if got := decodeDistance(s); got != d {
			t.Fatalf("distance %d round-tripped to %d", d, got)
		}
	}
}

func TestDistance_BitCostMatchesEncodedLength(t *testing.T) {
	distances := []uint32{1, 2, 3, 4, 100, 1 << 10, 1 << 20}
	for _, d := range distances {
		buf := make([]byte, 16)
		e := NewBitEmitter(buf)
		encodeDistance(e, d)
		if got, want := e.nbits+e.byteLen*8, distanceBits(d); got != want {
			t.Fatalf("distance %d: emitted %d bits, distanceBits() said %d", d, got, want)
		}
	}
}

func TestTypeCode_EncodeDecodeRoundTrip(t *testing.T) {
	kinds := []packetKind{packetLit, packetMatch, packetShortRep, packetLongRep0, packetLongRep1, packetLongRep2, packetLongRep3}
	for _, k := range kinds {
		buf := make([]byte, 4)
		e := NewBitEmitter(buf)
		encodeType(e, k)
		e.EmitTail()

		s := NewBitStream(e.Bytes())
		if got := decodeType(s); got != k {
			t.Fatalf("type %v round-tripped to %v", k, got)
		}
	}
}

func TestLiteral_EncodeDecodeRoundTrip(t *testing.T) {
	literals := []byte("The Quick Brown Fox! 0x7F \x80\xff")
	msbBuf := make([]byte, 8)
	litBuf := make([]byte, 32)
	msbE := NewBitEmitter(msbBuf)
	litE := NewBitEmitter(litBuf)

	var prev byte
	for _, b := range literals {
		encodeLiteral(msbE, litE, b, &prev)
	}
	msbE.EmitTail()
	litE.EmitTail()

	msbS := NewBitStream(msbE.Bytes())
	litS := NewBitStream(litE.Bytes())
	var decodePrev byte
	for i, want := range literals {
		got := decodeLiteral(msbS, litS, &decodePrev)
		if got != want {
			t.Fatalf("literal %d: got %#x want %#x", i, got, want)
		}
	}
}

func TestPacketCodec_EventsRoundTrip(t *testing.T) {
	src := []byte("abbbbcabbbbc")
	events := []Event{
		literalEvent(0, 2),
		matchEvent(1, 3, -1),
		literalEvent(5, 1),
		matchEvent(6, 6, -1),
	}

	bufSize := 64
	typeE := NewBitEmitter(make([]byte, bufSize))
	msbE := NewBitEmitter(make([]byte, bufSize))
	litE := NewBitEmitter(make([]byte, bufSize))
	sizeE := NewBitEmitter(make([]byte, bufSize))
	offE := NewBitEmitter(make([]byte, bufSize))

	enc := newPacketEncoder(typeE, msbE, litE, sizeE, offE)
	for _, ev := range events {
		enc.encode(src, ev)
	}
	typeE.EmitTail()
	msbE.EmitTail()
	litE.EmitTail()
	sizeE.EmitTail()
	offE.EmitTail()

	dec := newPacketDecoder(
		NewBitStream(typeE.Bytes()),
		NewBitStream(msbE.Bytes()),
		NewBitStream(litE.Bytes()),
		NewBitStream(sizeE.Bytes()),
		NewBitStream(offE.Bytes()),
	)
	dst := make([]byte, len(src))
	if err := dec.decode(dst); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if string(dst) != string(src) {
		t.Fatalf("decoded %q, want %q", dst, src)
	}
}
