package pe

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildSyntheticImage hand-assembles a minimal, well-formed PE32+ image with
// one section, for tests that don't depend on a real Windows binary fixture.
func buildSyntheticImage(sectionPayload []byte) []byte {
	const (
		peOffset        = 128
		optionalHdrSize = 112 // minimal PE32+ optional header, no data directories
		numSections     = 1
		sectionTableOff = peOffset + 4 + coffHeaderSize + optionalHdrSize
		headerSize      = sectionTableOff + numSections*sectionHeaderSize
	)

	buf := make([]byte, headerSize+len(sectionPayload))

	binary.LittleEndian.PutUint16(buf[0:2], dosSignature)
	binary.LittleEndian.PutUint32(buf[0x3C:0x40], peOffset)

	binary.LittleEndian.PutUint32(buf[peOffset:peOffset+4], peSignature)

	coffStart := peOffset + 4
	binary.LittleEndian.PutUint16(buf[coffStart:coffStart+2], 0x8664) // machine: x86-64
	binary.LittleEndian.PutUint16(buf[coffStart+2:coffStart+4], numSections)
	binary.LittleEndian.PutUint16(buf[coffStart+16:coffStart+18], optionalHdrSize)

	optStart := coffStart + coffHeaderSize
	binary.LittleEndian.PutUint16(buf[optStart:optStart+2], magicPE32Plus)
	binary.LittleEndian.PutUint32(buf[optStart+sizeOfHeadersOff:optStart+sizeOfHeadersOff+4], headerSize)

	secStart := sectionTableOff
	copy(buf[secStart:secStart+8], []byte(".text\x00\x00\x00"))
	binary.LittleEndian.PutUint32(buf[secStart+16:secStart+20], uint32(len(sectionPayload))) // SizeOfRawData
	binary.LittleEndian.PutUint32(buf[secStart+20:secStart+24], headerSize)                  // PointerToRawData

	copy(buf[headerSize:], sectionPayload)
	return buf
}

func TestParse_SplitsHeaderAndPayload(t *testing.T) {
	payload := bytes.Repeat([]byte{0xCD}, 256)
	img, err := Parse(buildSyntheticImage(payload))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !img.Is64 {
		t.Fatal("expected PE32+ image")
	}
	if len(img.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(img.Sections))
	}
	if name := img.Sections[0].Name8(); name != ".text" {
		t.Fatalf("section name = %q, want .text", name)
	}
	if !bytes.Equal(img.Payload(), payload) {
		t.Fatalf("Payload() mismatch: got %d bytes, want %d", len(img.Payload()), len(payload))
	}
	if len(img.Header())+len(img.Payload()) != len(buildSyntheticImage(payload)) {
		t.Fatal("Header()+Payload() does not reconstruct the full image length")
	}
}

func TestParse_RejectsBadSignatures(t *testing.T) {
	img := buildSyntheticImage([]byte("x"))

	corruptDOS := append([]byte(nil), img...)
	corruptDOS[0] = 'X'
	if _, err := Parse(corruptDOS); err != ErrBadSignature {
		t.Fatalf("corrupt DOS magic: err = %v, want ErrBadSignature", err)
	}

	corruptPE := append([]byte(nil), img...)
	corruptPE[128] = 0
	if _, err := Parse(corruptPE); err != ErrBadSignature {
		t.Fatalf("corrupt PE signature: err = %v, want ErrBadSignature", err)
	}

	if _, err := Parse(img[:32]); err != ErrTruncated {
		t.Fatalf("truncated image: err = %v, want ErrTruncated", err)
	}
}

func TestWrapUnwrap_RoundTrip(t *testing.T) {
	header := bytes.Repeat([]byte{0xAA}, 512)
	stub := []byte{0x90, 0x90, 0xC3}
	compressed := bytes.Repeat([]byte{0x5A}, 128)
	const originalPayloadLen = 4096

	container := Wrap(header, stub, compressed, originalPayloadLen)

	gotHeader, gotStub, gotCompressed, gotLen, err := Unwrap(container)
	if err != nil {
		t.Fatalf("Unwrap failed: %v", err)
	}
	if !bytes.Equal(gotHeader, header) {
		t.Fatal("header mismatch")
	}
	if !bytes.Equal(gotStub, stub) {
		t.Fatal("stub mismatch")
	}
	if !bytes.Equal(gotCompressed, compressed) {
		t.Fatal("compressed payload mismatch")
	}
	if gotLen != originalPayloadLen {
		t.Fatalf("payloadLen = %d, want %d", gotLen, originalPayloadLen)
	}
}

func TestUnwrap_RejectsBadMagic(t *testing.T) {
	if _, _, _, _, err := Unwrap([]byte("not a container")); err != ErrMalformedContainer {
		t.Fatalf("err = %v, want ErrMalformedContainer", err)
	}
}

func TestUnwrap_RejectsTruncatedLengths(t *testing.T) {
	container := Wrap([]byte("header"), nil, []byte("compressed"), 10)
	binary.LittleEndian.PutUint32(container[4:8], 0xFFFFFFFF) // claim a huge header
	if _, _, _, _, err := Unwrap(container); err != ErrMalformedContainer {
		t.Fatalf("err = %v, want ErrMalformedContainer", err)
	}
}
