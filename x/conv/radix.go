package conv

// MaxUint16Digits is the longest FormatUint16 result (base 2).
const MaxUint16Digits = 16

// FormatUint16 writes n in the given base (2..16, uppercase letters above 9)
// at the end of buf and returns the used slice. An unsupported base, or a buf
// too short for the result, yields an empty slice. Zero formats as "0".
// No sign, no padding, no allocations.
func FormatUint16(buf []byte, n uint16, base uint8) []byte {
	return FormatUint(buf, n, base)
}

// FormatUint is FormatUint16 for any unsigned width up to 32 bits.
func FormatUint[T ~uint8 | ~uint16 | ~uint32](buf []byte, n T, base uint8) []byte {
	if base < 2 || base > 16 {
		return buf[:0]
	}
	i := len(buf)
	b := T(base)
	for {
		if i == 0 {
			return buf[:0]
		}
		i--
		buf[i] = hexDigits[n%b]
		n /= b
		if n == 0 {
			break
		}
	}
	return buf[i:]
}

// ParseUint16 accumulates the leading decimal digits of s and stops at the
// first non-digit. It never fails: no digits gives 0, and values past 65535
// wrap modulo 2^16.
func ParseUint16[S ~string | ~[]byte](s S) uint16 {
	var v uint16
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + uint16(c-'0')
	}
	return v
}
