// Package regsim is an in-memory model of the ATmega2560 USART register file.
//
// It implements usart.Bus. Each USART gets an RX queue (filled with Feed) and a
// TX log (read with Transmitted). UDRE reads as set unless a stall was
// requested with StallTx; RXC reads as set while the RX queue is non-empty.
// Every register access is recorded so tests can assert on bus traffic.
package regsim

import (
	"sync"

	"avrusart-go/drivers/usart"
	"avrusart-go/x/conv"
)

// idleAfter is the number of consecutive "nothing received" status reads
// before OnIdle runs.
const idleAfter = 64

type regKind uint8

const (
	kindPlain regKind = iota
	kindStatus
	kindData
)

type regRef struct {
	id   uint8
	kind regKind
}

// Access is one recorded register read or write.
type Access struct {
	Addr  uint16
	Val   uint8
	Write bool
}

func (a Access) String() string {
	var ab [4]byte
	var vb [2]byte
	op := " -> "
	if a.Write {
		op = " <- "
	}
	return "0x" + string(conv.Hex16(ab[:], a.Addr)) + op + "0x" + string(conv.Hex8(vb[:], a.Val))
}

type port struct {
	regs  usart.Regs
	rx    []byte
	tx    []byte
	stall int
	empty int // consecutive status reads with rx empty
}

// File is the simulated register file. The zero value is not usable; call New.
type File struct {
	mu    sync.Mutex
	mem   map[uint16]uint8
	refs  map[uint16]regRef
	ports [usart.Count]port
	log   []Access
	quiet bool

	// OnTransmit, if set, receives every byte written to a data register.
	// It runs without the File lock held.
	OnTransmit func(id uint8, c byte)
	// OnIdle, if set, runs after a run of status reads that found no received
	// byte, so a host process can throttle a polling loop.
	OnIdle func()
	// OnWrite, if set, sees every register write.
	OnWrite func(a Access)
}

var _ usart.Bus = (*File)(nil)

func New() *File {
	f := &File{
		mem:  make(map[uint16]uint8),
		refs: make(map[uint16]regRef),
	}
	for id := uint8(0); id < usart.Count; id++ {
		r, _ := usart.Lookup(id)
		f.ports[id].regs = r
		f.refs[r.UCSRA] = regRef{id: id, kind: kindStatus}
		f.refs[r.UDR] = regRef{id: id, kind: kindData}
		f.refs[r.UCSRB] = regRef{id: id}
		f.refs[r.UCSRC] = regRef{id: id}
		f.refs[r.UBRRH] = regRef{id: id}
		f.refs[r.UBRRL] = regRef{id: id}
	}
	return f
}

// Get implements usart.Bus.
func (f *File) Get(addr uint16) uint8 {
	f.mu.Lock()
	v, idle := f.read(addr)
	if !f.quiet {
		f.log = append(f.log, Access{Addr: addr, Val: v})
	}
	onIdle := f.OnIdle
	f.mu.Unlock()

	if idle && onIdle != nil {
		onIdle()
	}
	return v
}

func (f *File) read(addr uint16) (v uint8, idle bool) {
	ref, ok := f.refs[addr]
	if !ok {
		return f.mem[addr], false
	}
	p := &f.ports[ref.id]
	switch ref.kind {
	case kindStatus:
		v = f.mem[addr] &^ (1<<p.regs.UDRE | 1<<p.regs.RXC)
		if p.stall > 0 {
			p.stall--
		} else {
			v |= 1 << p.regs.UDRE
		}
		if len(p.rx) > 0 {
			v |= 1 << p.regs.RXC
			p.empty = 0
		} else {
			p.empty++
			if p.empty >= idleAfter {
				p.empty = 0
				idle = true
			}
		}
		return v, idle
	case kindData:
		if len(p.rx) == 0 {
			return 0, false
		}
		v = p.rx[0]
		p.rx = p.rx[1:]
		return v, false
	default:
		return f.mem[addr], false
	}
}

// Set implements usart.Bus.
func (f *File) Set(addr uint16, v uint8) {
	a := Access{Addr: addr, Val: v, Write: true}

	f.mu.Lock()
	if !f.quiet {
		f.log = append(f.log, a)
	}
	tx, txID := false, uint8(0)
	if ref, ok := f.refs[addr]; ok && ref.kind == kindData {
		p := &f.ports[ref.id]
		p.tx = append(p.tx, v)
		p.empty = 0
		tx, txID = true, ref.id
	} else {
		f.mem[addr] = v
	}
	onTx, onWrite := f.OnTransmit, f.OnWrite
	f.mu.Unlock()

	if onWrite != nil {
		onWrite(a)
	}
	if tx && onTx != nil {
		onTx(txID, v)
	}
}

// Feed queues bytes as if they had arrived on the RX line of USART id.
func (f *File) Feed(id uint8, p ...byte) {
	if id >= usart.Count {
		return
	}
	f.mu.Lock()
	f.ports[id].rx = append(f.ports[id].rx, p...)
	f.mu.Unlock()
}

// FeedString is Feed for text.
func (f *File) FeedString(id uint8, s string) { f.Feed(id, []byte(s)...) }

// Pending returns how many fed bytes USART id has not read yet.
func (f *File) Pending(id uint8) int {
	if id >= usart.Count {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ports[id].rx)
}

// StallTx makes the next `polls` status reads of USART id report UDRE clear.
func (f *File) StallTx(id uint8, polls int) {
	if id >= usart.Count {
		return
	}
	f.mu.Lock()
	f.ports[id].stall = polls
	f.mu.Unlock()
}

// Transmitted returns a copy of everything written to the data register of
// USART id.
func (f *File) Transmitted(id uint8) []byte {
	if id >= usart.Count {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.ports[id].tx...)
}

// Peek returns the stored value of a register without recording an access.
// Data registers are not stored and read as 0.
func (f *File) Peek(addr uint16) uint8 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mem[addr]
}

// Accesses returns a copy of the access log.
func (f *File) Accesses() []Access {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Access(nil), f.log...)
}

// Writes returns only the recorded writes.
func (f *File) Writes() []Access {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Access
	for _, a := range f.log {
		if a.Write {
			out = append(out, a)
		}
	}
	return out
}

// SetLogging turns access recording on or off. It is on after New; long
// running simulations switch it off since every poll is an access.
func (f *File) SetLogging(on bool) {
	f.mu.Lock()
	f.quiet = !on
	f.mu.Unlock()
}

// ResetLog clears the access log and TX capture, keeping register contents.
func (f *File) ResetLog() {
	f.mu.Lock()
	f.log = f.log[:0]
	for i := range f.ports {
		f.ports[i].tx = nil
	}
	f.mu.Unlock()
}
