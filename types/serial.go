package types

import (
	"errors"

	"avrusart-go/x/conv"
)

// ------------------------
// Serial
// ------------------------

// Parity values match the numeric parity argument of usart.Driver.Configure.
type Parity uint8

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

var errParity = errors.New("parity: want \"none\", \"odd\" or \"even\"")

func (p Parity) String() string {
	switch p {
	case ParityEven:
		return "even"
	case ParityOdd:
		return "odd"
	default:
		return "none"
	}
}

func (p Parity) MarshalJSON() ([]byte, error) { return []byte(`"` + p.String() + `"`), nil }

func (p *Parity) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"none"`, `""`, `null`, `0`:
		*p = ParityNone
	case `"odd"`, `1`:
		*p = ParityOdd
	case `"even"`, `2`:
		*p = ParityEven
	default:
		return errParity
	}
	return nil
}

// SerialFormat is the line setting of one port. Zero fields fall back to
// 9600 8N1 through Defaults.
type SerialFormat struct {
	Baud     uint32 `json:"baud"`
	DataBits uint8  `json:"data_bits"`
	Parity   Parity `json:"parity"`
	StopBits uint8  `json:"stop_bits"`
}

// Defaults fills zero fields.
func (f SerialFormat) Defaults() SerialFormat {
	if f.Baud == 0 {
		f.Baud = 9600
	}
	if f.DataBits == 0 {
		f.DataBits = 8
	}
	if f.StopBits == 0 {
		f.StopBits = 1
	}
	return f
}

// FrameBits is the number of bit times one character occupies on the line:
// start bit, data bits, optional parity bit and stop bits. Zero fields count
// as their defaults.
func (f SerialFormat) FrameBits() uint8 {
	f = f.Defaults()
	n := 1 + f.DataBits + f.StopBits
	if f.Parity == ParityOdd || f.Parity == ParityEven {
		n++
	}
	return n
}

// String renders the conventional short form, e.g. "9600 8N1".
func (f SerialFormat) String() string {
	p := byte('N')
	switch f.Parity {
	case ParityOdd:
		p = 'O'
	case ParityEven:
		p = 'E'
	}
	var buf [10]byte
	baud := conv.FormatUint(buf[:], f.Baud, 10)
	return string(baud) + " " + string([]byte{'0' + f.DataBits%10, p, '0' + f.StopBits%10})
}
