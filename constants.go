package minify

// Packet-grammar constants: TYPE-stream prefix codes and SIZE-stream
// length-class boundaries for the LZMA-dialect packet codec.

// packetKind is the in-memory discriminant for a decoded/to-be-encoded
// packet, kept separate from its on-wire TYPE-stream prefix code, which is
// a pure encode/decode concern (packet.go).
type packetKind int

const (
	packetLit packetKind = iota
	packetMatch
	packetShortRep
	packetLongRep0
	packetLongRep1
	packetLongRep2
	packetLongRep3
)

func (k packetKind) String() string {
	switch k {
	case packetLit:
		return "LIT"
	case packetMatch:
		return "MATCH"
	case packetShortRep:
		return "SHORTREP"
	case packetLongRep0:
		return "LONGREP0"
	case packetLongRep1:
		return "LONGREP1"
	case packetLongRep2:
		return "LONGREP2"
	case packetLongRep3:
		return "LONGREP3"
	default:
		return "INVALID"
	}
}

// Length-class boundaries for the SIZE stream.
const (
	minMatchLen = 2
	maxMatchLen = 273

	lenClass1Max = 9   // prefix 0, 3 tail bits, value-2
	lenClass2Max = 17  // prefix 10, 3 tail bits, value-10
	lenClass3Max = 273 // prefix 11, 8 tail bits, value-18

	lenClass1TailBits = 3
	lenClass2TailBits = 3
	lenClass3TailBits = 8

	lenClass2Base = 10
	lenClass3Base = 18
)

// Distance-slot encoding constants: d' = distance-1; d' < 2 is a direct
// 6-bit slot value, otherwise a 6-bit slot plus (k-1) payload bits.
const distSlotBits = 6

// Match-finder chunk arena sizing: max(0x10000, 2*N/15) chunks of up to 15
// positions each.
const (
	chunkPositions  = 15
	minArenaChunks  = 0x10000
	arenaDivisor    = 15
	arenaNumerator  = 2
	invalidChunk    = int32(-1)
	invalidPairHead = int32(-1)
)

// ringSize is the last-four-distance ring's fixed length.
const ringSize = 4
