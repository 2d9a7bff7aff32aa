package binary

// Synchsafe decodes a 4-byte synchsafe integer, 7 bits per byte:
// (b0<<21)|(b1<<14)|(b2<<7)|b3. The high bit of each byte is ignored.
func Synchsafe(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// Plain decodes a 4-byte big-endian integer, 8 bits per byte.
func Plain(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// EncodeSynchsafe is the inverse of Synchsafe for values below 1<<28.
func EncodeSynchsafe(v uint32) [4]byte {
	return [4]byte{
		byte(v>>21) & 0x7F,
		byte(v>>14) & 0x7F,
		byte(v>>7) & 0x7F,
		byte(v) & 0x7F,
	}
}
