// Package usart is a polled driver for the ATmega2560 USARTs.
//
// Design notes:
//   - One code path drives all four instances; every operation takes a port id
//     (0..3) and resolves its registers through Lookup.
//   - An id >= Count makes mutating calls a no-op and queries return a zero
//     value. No register is read or written in that case.
//   - Transmit and receive busy-wait on UDRE / RXC with no timeout. The
//     *Context variants in port.go poll the same bits but honour cancellation.
//   - No locking: a port id must have a single owner.
package usart

import (
	"avrusart-go/types"
	"avrusart-go/x/mathx"
)

// DefaultClockHz is F_CPU on the Arduino Mega 2560.
const DefaultClockHz = 16_000_000

// Parity and stop-bit arguments accepted by Configure.
const (
	ParityNone = uint8(types.ParityNone)
	ParityOdd  = uint8(types.ParityOdd)
	ParityEven = uint8(types.ParityEven)

	TwoStopBits = 2
)

// Bus reads and writes 8-bit registers at data-space addresses.
// On hardware it is MMIO; tests and the simulator substitute regsim.File.
type Bus interface {
	Get(addr uint16) uint8
	Set(addr uint16, v uint8)
}

type Config struct {
	// ClockHz is the CPU clock feeding the baud generator.
	// Zero selects DefaultClockHz.
	ClockHz uint32
}

type Driver struct {
	bus     Bus
	clockHz uint32
}

func New(bus Bus, cfg Config) *Driver {
	clk := cfg.ClockHz
	if clk == 0 {
		clk = DefaultClockHz
	}
	return &Driver{bus: bus, clockHz: clk}
}

// ClockHz reports the clock used for divisor computation.
func (d *Driver) ClockHz() uint32 { return d.clockHz }

// Configure programs baud rate and frame format for port id and enables the
// receiver, the transmitter and the receive-complete interrupt.
//
// size is 5..8 data bits (anything else means 8), parity is ParityNone,
// ParityOdd or ParityEven (anything else means none) and stop is 1 or 2
// (only 2 selects two stop bits).
//
// RXCIE enables the hardware interrupt request line; this package installs no
// handler. Callers either service USARTn_RX themselves or clear the bit with
// SetRxInterrupt(id, false).
//
// An invalid id or a zero baud rate leaves the hardware untouched.
func (d *Driver) Configure(id uint8, baud uint32, size, parity, stop uint8) {
	r, ok := Lookup(id)
	if !ok || baud == 0 {
		return
	}

	ubrr := Divisor(d.clockHz, baud)
	d.bus.Set(r.UBRRH, uint8(ubrr>>8))
	d.bus.Set(r.UBRRL, uint8(ubrr))

	d.bus.Set(r.UCSRB, bit(r.RXEN)|bit(r.TXEN)|bit(r.RXCIE))
	d.bus.Set(r.UCSRC, frameFormat(r, size, parity, stop))
}

// ConfigureFormat applies f (after Defaults) with Configure.
func (d *Driver) ConfigureFormat(id uint8, f types.SerialFormat) {
	f = f.Defaults()
	d.Configure(id, f.Baud, f.DataBits, uint8(f.Parity), f.StopBits)
}

// SetRxInterrupt sets or clears RXCIE, leaving the other UCSRnB bits alone.
func (d *Driver) SetRxInterrupt(id uint8, enabled bool) {
	r, ok := Lookup(id)
	if !ok {
		return
	}
	v := d.bus.Get(r.UCSRB)
	if enabled {
		v |= bit(r.RXCIE)
	} else {
		v &^= bit(r.RXCIE)
	}
	d.bus.Set(r.UCSRB, v)
}

// frameFormat composes UCSRnC.
func frameFormat(r Regs, size, parity, stop uint8) uint8 {
	var v uint8
	switch size {
	case 5:
	case 6:
		v |= bit(r.UCSZ0)
	case 7:
		v |= bit(r.UCSZ1)
	default: // 8 and anything unrecognised
		v |= bit(r.UCSZ1) | bit(r.UCSZ0)
	}

	// UPMn1:0 = 10 even, 11 odd.
	switch parity {
	case ParityOdd:
		v |= bit(r.UPM1) | bit(r.UPM0)
	case ParityEven:
		v |= bit(r.UPM1)
	}

	if stop == TwoStopBits {
		v |= bit(r.USBS)
	}
	return v
}

// Divisor returns the UBRR value for normal-speed asynchronous mode:
//
//	UBRR = clockHz/16/baud - 1
//
// with truncating division (no rounding correction) and 16-bit wrap, so a
// baud above clockHz/16 yields 0xFFFF. baud == 0 yields 0.
func Divisor(clockHz, baud uint32) uint16 {
	if baud == 0 {
		return 0
	}
	return uint16(clockHz/16/baud - 1)
}

// ActualBaud is the rate the generator produces for a given UBRR value.
func ActualBaud(clockHz uint32, ubrr uint16) uint32 {
	return mathx.TruncDiv(clockHz, 16*(uint32(ubrr)+1))
}

// BaudError returns the deviation of the generated rate from baud in tenths
// of a percent, rounded (e.g. 2 means 0.2 %).
func BaudError(clockHz, baud uint32) uint32 {
	if baud == 0 {
		return 0
	}
	got := ActualBaud(clockHz, Divisor(clockHz, baud))
	return uint32(mathx.RoundDiv(uint64(mathx.AbsDiff(got, baud))*1000, uint64(baud)))
}
