package conv

const hexDigits = "0123456789ABCDEF"

// Hex8 writes 2-digit uppercase hex without 0x, zero-padded.
func Hex8(buf []byte, n uint8) []byte {
	if len(buf) < 2 {
		return buf[:0]
	}
	i := len(buf) - 2
	buf[i] = hexDigits[n>>4]
	buf[i+1] = hexDigits[n&0xF]
	return buf[i:]
}

// Hex16 writes 4-digit uppercase hex without 0x, zero-padded.
func Hex16(buf []byte, n uint16) []byte {
	if len(buf) < 4 {
		return buf[:0]
	}
	i := len(buf)
	for j := 0; j < 4; j++ {
		i--
		buf[i] = hexDigits[n&0xF]
		n >>= 4
	}
	return buf[i:]
}
