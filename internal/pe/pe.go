// Package pe parses the headers of a Windows Portable Executable image well
// enough to split it into a preserved header region and a compressible
// payload, and to reassemble the two after decompression. It does not
// rewrite relocations, preserve exception tables, or validate checksums;
// per its non-goals it treats the header region as an opaque block to be
// carried through unmodified.
package pe

import (
	"encoding/binary"
	"fmt"
)

const (
	dosSignature = 0x5A4D // "MZ"
	peSignature  = 0x00004550
	peOffsetPos  = 0x3C

	coffHeaderSize = 20

	magicPE32     = 0x010B
	magicPE32Plus = 0x020B

	// sizeOfHeaders field offsets within the optional header, identical
	// across PE32 and PE32+ (it precedes the fields that differ in width).
	sizeOfHeadersOff = 60
)

// COFFHeader is the file header immediately following the PE signature.
type COFFHeader struct {
	Machine              uint16
	NumberOfSections     uint16
	TimeDateStamp        uint32
	PointerToSymbolTable uint32
	NumberOfSymbols      uint32
	SizeOfOptionalHeader uint16
	Characteristics      uint16
}

// SectionHeader describes one section's placement in the file and in memory.
type SectionHeader struct {
	Name                 [8]byte
	VirtualSize          uint32
	VirtualAddress       uint32
	SizeOfRawData        uint32
	PointerToRawData     uint32
	PointerToRelocations uint32
	PointerToLinenumbers uint32
	NumberOfRelocations  uint16
	NumberOfLinenumbers  uint16
	Characteristics      uint32
}

// Image is a parsed PE file, split into the header region (DOS stub, PE
// signature, COFF header, optional header, section table, padding) and the
// payload bytes that follow it.
type Image struct {
	Is64       bool
	PEOffset   uint32
	COFF       COFFHeader
	Sections   []SectionHeader
	headerSize uint32
	raw        []byte
}

// Parse reads the DOS header, COFF header, optional header and section
// table of data. It returns ErrTruncated or ErrBadSignature if data is not
// a well-formed PE image.
func Parse(data []byte) (*Image, error) {
	if len(data) < 64 {
		return nil, ErrTruncated
	}
	if binary.LittleEndian.Uint16(data[0:2]) != dosSignature {
		return nil, ErrBadSignature
	}

	peOffset := binary.LittleEndian.Uint32(data[peOffsetPos : peOffsetPos+4])
	if int(peOffset)+4+coffHeaderSize > len(data) {
		return nil, ErrTruncated
	}
	if binary.LittleEndian.Uint32(data[peOffset:peOffset+4]) != peSignature {
		return nil, ErrBadSignature
	}

	coffStart := peOffset + 4
	coff, err := parseCOFFHeader(data[coffStart : coffStart+coffHeaderSize])
	if err != nil {
		return nil, err
	}

	optStart := int(coffStart) + coffHeaderSize
	optEnd := optStart + int(coff.SizeOfOptionalHeader)
	if optEnd > len(data) {
		return nil, ErrTruncated
	}
	optional := data[optStart:optEnd]

	is64, headerSize, err := parseOptionalHeader(optional)
	if err != nil {
		return nil, err
	}

	sectionStart := optEnd
	sections, err := parseSectionTable(data, sectionStart, int(coff.NumberOfSections))
	if err != nil {
		return nil, err
	}

	if headerSize == 0 || int(headerSize) > len(data) {
		// Fall back to the end of the section table: some linkers leave
		// SizeOfHeaders at 0 in hand-built images.
		headerSize = uint32(sectionStart + int(coff.NumberOfSections)*sectionHeaderSize)
	}

	return &Image{
		Is64:       is64,
		PEOffset:   peOffset,
		COFF:       coff,
		Sections:   sections,
		headerSize: headerSize,
		raw:        data,
	}, nil
}

func parseCOFFHeader(b []byte) (COFFHeader, error) {
	var h COFFHeader
	if len(b) < coffHeaderSize {
		return h, ErrTruncated
	}
	h.Machine = binary.LittleEndian.Uint16(b[0:2])
	h.NumberOfSections = binary.LittleEndian.Uint16(b[2:4])
	h.TimeDateStamp = binary.LittleEndian.Uint32(b[4:8])
	h.PointerToSymbolTable = binary.LittleEndian.Uint32(b[8:12])
	h.NumberOfSymbols = binary.LittleEndian.Uint32(b[12:16])
	h.SizeOfOptionalHeader = binary.LittleEndian.Uint16(b[16:18])
	h.Characteristics = binary.LittleEndian.Uint16(b[18:20])
	return h, nil
}

// parseOptionalHeader reports whether the image is PE32+ and the declared
// SizeOfHeaders. The two layouts only diverge after this field, so no
// further fields need to be read to locate the payload.
func parseOptionalHeader(b []byte) (is64 bool, sizeOfHeaders uint32, err error) {
	if len(b) < 2 {
		return false, 0, ErrTruncated
	}
	magic := binary.LittleEndian.Uint16(b[0:2])
	switch magic {
	case magicPE32Plus:
		is64 = true
	case magicPE32:
		is64 = false
	default:
		return false, 0, fmt.Errorf("%w: optional header magic 0x%04x", ErrBadSignature, magic)
	}
	if len(b) < sizeOfHeadersOff+4 {
		return is64, 0, nil
	}
	return is64, binary.LittleEndian.Uint32(b[sizeOfHeadersOff : sizeOfHeadersOff+4]), nil
}

const sectionHeaderSize = 40

func parseSectionTable(data []byte, start, count int) ([]SectionHeader, error) {
	sections := make([]SectionHeader, count)
	for i := 0; i < count; i++ {
		off := start + i*sectionHeaderSize
		if off+sectionHeaderSize > len(data) {
			return nil, ErrTruncated
		}
		b := data[off : off+sectionHeaderSize]
		s := &sections[i]
		copy(s.Name[:], b[0:8])
		s.VirtualSize = binary.LittleEndian.Uint32(b[8:12])
		s.VirtualAddress = binary.LittleEndian.Uint32(b[12:16])
		s.SizeOfRawData = binary.LittleEndian.Uint32(b[16:20])
		s.PointerToRawData = binary.LittleEndian.Uint32(b[20:24])
		s.PointerToRelocations = binary.LittleEndian.Uint32(b[24:28])
		s.PointerToLinenumbers = binary.LittleEndian.Uint32(b[28:32])
		s.NumberOfRelocations = binary.LittleEndian.Uint16(b[32:34])
		s.NumberOfLinenumbers = binary.LittleEndian.Uint16(b[34:36])
		s.Characteristics = binary.LittleEndian.Uint32(b[36:40])
	}
	return sections, nil
}

// Header returns the preserved header region: DOS stub through the section
// table (and any file-alignment padding up to the first section's raw data).
func (img *Image) Header() []byte {
	return img.raw[:img.headerSize]
}

// Payload returns the bytes following the header region: the concatenated
// section contents that minify.Compress operates on.
func (img *Image) Payload() []byte {
	return img.raw[img.headerSize:]
}

// Name8 returns a section's 8-byte name as a string, cut at the first NUL
// byte; space padding is not trimmed.
func (s *SectionHeader) Name8() string {
	n := 0
	for n < len(s.Name) && s.Name[n] != 0 {
		n++
	}
	return string(s.Name[:n])
}
