package usart

// ANSI foreground colors for SetColor.
const (
	Black uint8 = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

const esc = 0x1B

// ClearScreen sends ESC[2J.
func (d *Driver) ClearScreen(id uint8) {
	d.SendString(id, "\x1b[2J")
}

// SetColor sends ESC[1;3<c>m (bold, foreground c). color wraps modulo 8.
func (d *Driver) SetColor(id uint8, color uint8) {
	seq := [...]byte{esc, '[', '1', ';', '3', '0' + color%8, 'm'}
	d.Send(id, seq[:])
}

// GotoXY sends ESC[<row>;<col>H with two decimal digits per field, e.g.
// GotoXY(id, 5, 12) sends ESC[05;12H. Values of 100 and above do not fit:
// the tens digit runs past '9' into the following ASCII characters.
func (d *Driver) GotoXY(id uint8, row, col uint8) {
	seq := [...]byte{esc, '[', '0', '0', ';', '0', '0', 'H'}
	twoDigits(seq[2:4], row)
	twoDigits(seq[5:7], col)
	d.Send(id, seq[:])
}

func twoDigits(dst []byte, v uint8) {
	dst[1] = '0' + v%10
	if v >= 10 {
		dst[0] = '0' + v/10
	}
}
