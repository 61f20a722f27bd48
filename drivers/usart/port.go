package usart

import (
	"context"
	"runtime"

	"tinygo.org/x/drivers"

	"avrusart-go/errcode"
)

// Port binds a Driver to one USART so it can be handed to code written
// against tinygo.org/x/drivers.UART (gps, espat and friends) or io.Reader /
// io.Writer. Semantics follow machine.UART: Read and ReadByte never block,
// Write and WriteByte block until each byte is accepted.
type Port struct {
	d  *Driver
	id uint8
}

var _ drivers.UART = (*Port)(nil)

// Port returns a Port for id, or errcode.UnknownPort for id >= Count.
func (d *Driver) Port(id uint8) (*Port, error) {
	if _, ok := Lookup(id); !ok {
		return nil, errcode.UnknownPort
	}
	return &Port{d: d, id: id}, nil
}

// ID returns the USART number the port drives.
func (p *Port) ID() uint8 { return p.id }

// Buffered returns 1 while RXC is set, else 0. The USART holds at most one
// unread byte visible to software.
func (p *Port) Buffered() int {
	if p.d.Available(p.id) {
		return 1
	}
	return 0
}

// Read copies received bytes into b while RXC stays set. It returns 0, nil
// when nothing is waiting.
func (p *Port) Read(b []byte) (int, error) {
	n := 0
	for n < len(b) && p.d.Available(p.id) {
		b[n] = p.d.RecvByte(p.id)
		n++
	}
	return n, nil
}

// ReadByte returns errcode.BufferEmpty when no byte is waiting.
func (p *Port) ReadByte() (byte, error) {
	if !p.d.Available(p.id) {
		return 0, errcode.BufferEmpty
	}
	return p.d.RecvByte(p.id), nil
}

// Write transmits all of b.
func (p *Port) Write(b []byte) (int, error) {
	p.d.Send(p.id, b)
	return len(b), nil
}

func (p *Port) WriteByte(c byte) error {
	p.d.SendByte(p.id, c)
	return nil
}

// ReadByteContext is RecvByteContext on the bound id.
func (p *Port) ReadByteContext(ctx context.Context) (byte, error) {
	return p.d.RecvByteContext(ctx, p.id)
}

// ---------------- Cancellable polling ----------------

// RecvByteContext polls RXC like RecvByte but gives up when ctx is done.
// Between polls it yields so other goroutines can run.
func (d *Driver) RecvByteContext(ctx context.Context, id uint8) (byte, error) {
	r, ok := Lookup(id)
	if !ok {
		return 0, errcode.UnknownPort
	}
	for d.bus.Get(r.UCSRA)&bit(r.RXC) == 0 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		runtime.Gosched()
	}
	return d.bus.Get(r.UDR), nil
}

// SendByteContext polls UDRE like SendByte but gives up when ctx is done.
// The byte is written only if the transmitter became ready in time.
func (d *Driver) SendByteContext(ctx context.Context, id uint8, c byte) error {
	r, ok := Lookup(id)
	if !ok {
		return errcode.UnknownPort
	}
	for d.bus.Get(r.UCSRA)&bit(r.UDRE) == 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
	}
	d.bus.Set(r.UDR, c)
	return nil
}
