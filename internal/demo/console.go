// Package demo is a small interactive console on one USART: it reads a
// decimal number with the driver's line editor and prints it in bases 2, 8,
// 10 and 16. Firmware and the host simulator both run it.
package demo

import (
	"context"

	"avrusart-go/drivers/usart"
	"avrusart-go/types"
	"avrusart-go/x/conv"
	"avrusart-go/x/mathx"
)

// Layout is the visible terminal area. GotoXY carries two digits per field,
// so both dimensions are clamped to 1..99.
type Layout struct {
	Rows, Cols int
}

// DefaultLayout is a classic 24x80 terminal.
var DefaultLayout = Layout{Rows: 24, Cols: 80}

func (l Layout) clamp() (rows, cols uint8) {
	return uint8(mathx.Clamp(l.Rows, 1, 99)), uint8(mathx.Clamp(l.Cols, 1, 99))
}

type Console struct {
	d      *usart.Driver
	id     uint8
	format types.SerialFormat
	rows   uint8
	cols   uint8

	line usart.LineBuffer
	num  [conv.MaxUint16Digits]byte
}

func New(d *usart.Driver, id uint8, f types.SerialFormat, l Layout) *Console {
	rows, cols := l.clamp()
	return &Console{d: d, id: id, format: f.Defaults(), rows: rows, cols: cols}
}

// Banner clears the screen, prints the title and line settings, and a key
// hint on the last row, then parks the cursor on row 4.
func (c *Console) Banner() {
	d, id := c.d, c.id
	d.ClearScreen(id)

	d.GotoXY(id, 1, 1)
	d.SetColor(id, usart.Cyan)
	d.SendString(id, "USART")
	c.number(uint16(id), 10)
	d.SendString(id, " number console")

	d.GotoXY(id, 2, 1)
	d.SetColor(id, usart.White)
	d.SendString(id, c.format.String())
	d.SendString(id, "  UBRR=")
	c.number(usart.Divisor(d.ClockHz(), c.format.Baud), 10)
	d.SendString(id, "  err=")
	e := usart.BaudError(d.ClockHz(), c.format.Baud)
	c.number(uint16(e/10), 10)
	d.SendByte(id, '.')
	c.number(uint16(e%10), 10)
	d.SendByte(id, '%')

	d.GotoXY(id, c.rows, 1)
	d.SetColor(id, usart.Yellow)
	hint := "digits, backspace, enter"
	if len(hint) > int(c.cols) {
		hint = hint[:c.cols]
	}
	d.SendString(id, hint)

	d.SetColor(id, usart.White)
	d.GotoXY(id, 4, 1)
}

// Step prompts, reads one line and prints the conversions. It returns the
// parsed value and the number of digits typed.
func (c *Console) Step() (uint16, int) {
	d, id := c.d, c.id

	d.SetColor(id, usart.Green)
	d.SendString(id, "\r\nnumber> ")
	d.SetColor(id, usart.White)

	n := d.ReadLine(id, &c.line)
	if n == 0 {
		d.SetColor(id, usart.Red)
		d.SendString(id, "\r\n  no digits")
		d.SetColor(id, usart.White)
		return 0, 0
	}

	v := conv.ParseUint16(c.line.Bytes())
	for _, b := range [...]struct {
		label string
		base  uint8
	}{
		{"\r\n  dec ", 10},
		{"\r\n  hex ", 16},
		{"\r\n  oct ", 8},
		{"\r\n  bin ", 2},
	} {
		d.SendString(id, b.label)
		c.number(v, b.base)
	}
	return v, n
}

// Run shows the banner and then repeats Step until ctx is done. ctx is only
// checked between lines; a pending ReadLine is not interrupted.
func (c *Console) Run(ctx context.Context) error {
	c.Banner()
	for ctx.Err() == nil {
		c.Step()
	}
	return ctx.Err()
}

func (c *Console) number(v uint16, base uint8) {
	c.d.Send(c.id, conv.FormatUint16(c.num[:], v, base))
}
