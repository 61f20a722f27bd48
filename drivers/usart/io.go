package usart

// LineMax is the number of digits ReadLine accepts.
const LineMax = 20

// Control bytes handled and emitted by ReadLine.
const (
	keyBackspace = '\b'
	keyCR        = '\r'
	keyLF        = '\n'
	bell         = '\a'
)

// LineBuffer receives ReadLine input: up to LineMax digits followed by a NUL.
type LineBuffer [LineMax + 1]byte

// Bytes returns the content up to the first NUL.
func (b *LineBuffer) Bytes() []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b[:]
}

func (b *LineBuffer) String() string { return string(b.Bytes()) }

// SendByte waits for UDRE and writes c to the data register.
// It blocks until the transmitter accepts the byte.
func (d *Driver) SendByte(id uint8, c byte) {
	r, ok := Lookup(id)
	if !ok {
		return
	}
	for d.bus.Get(r.UCSRA)&bit(r.UDRE) == 0 {
	}
	d.bus.Set(r.UDR, c)
}

// SendString transmits s byte by byte, stopping at the end of s or at the
// first NUL, whichever comes first.
func (d *Driver) SendString(id uint8, s string) {
	if id >= Count {
		return
	}
	for i := 0; i < len(s) && s[i] != 0; i++ {
		d.SendByte(id, s[i])
	}
}

// Send transmits every byte of p, NULs included.
func (d *Driver) Send(id uint8, p []byte) {
	if id >= Count {
		return
	}
	for _, c := range p {
		d.SendByte(id, c)
	}
}

// Available reports whether a received byte is waiting (RXC set).
// It never blocks.
func (d *Driver) Available(id uint8) bool {
	r, ok := Lookup(id)
	if !ok {
		return false
	}
	return d.bus.Get(r.UCSRA)&bit(r.RXC) != 0
}

// RecvByte waits until a byte has been received and returns it. There is no
// timeout: with a silent line it never returns. An invalid id returns 0.
func (d *Driver) RecvByte(id uint8) byte {
	r, ok := Lookup(id)
	if !ok {
		return 0
	}
	for !d.Available(id) {
	}
	return d.bus.Get(r.UDR)
}

// ReadLine reads an echoed line of decimal digits into buf and returns how
// many were stored; buf[n] is set to NUL.
//
//   - CR or LF ends the line and is not stored.
//   - Backspace removes the last digit and echoes "\b \b". With nothing to
//     remove it is rejected.
//   - A digit is stored and echoed while fewer than LineMax are held.
//   - Everything else, including a digit once LineMax are held, is rejected
//     with a bell.
//
// An invalid id (or nil buf) returns 0 and leaves buf untouched.
func (d *Driver) ReadLine(id uint8, buf *LineBuffer) int {
	if id >= Count || buf == nil {
		return 0
	}
	n := 0
	for {
		c := d.RecvByte(id)
		switch {
		case c == keyCR || c == keyLF:
			buf[n] = 0
			return n
		case c == keyBackspace && n > 0:
			n--
			d.SendString(id, "\b \b")
		case c >= '0' && c <= '9' && n < LineMax:
			buf[n] = c
			n++
			d.SendByte(id, c)
		default:
			d.SendByte(id, bell)
		}
	}
}
