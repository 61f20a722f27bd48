package regsim

import (
	"testing"

	"avrusart-go/drivers/usart"
)

func regsOf(t *testing.T, id uint8) usart.Regs {
	t.Helper()
	r, ok := usart.Lookup(id)
	if !ok {
		t.Fatalf("no USART%d", id)
	}
	return r
}

func TestAccessString(t *testing.T) {
	if got := (Access{Addr: 0xC6, Val: 0x41, Write: true}).String(); got != "0x00C6 <- 0x41" {
		t.Fatalf("write = %q", got)
	}
	if got := (Access{Addr: 0x130, Val: 0xA0}).String(); got != "0x0130 -> 0xA0" {
		t.Fatalf("read = %q", got)
	}
}

func TestStatusBits(t *testing.T) {
	f := New()
	r := regsOf(t, 3)

	if v := f.Get(r.UCSRA); v != 1<<r.UDRE {
		t.Fatalf("idle status = %#x", v)
	}
	f.Feed(3, 'x')
	if v := f.Get(r.UCSRA); v != 1<<r.UDRE|1<<r.RXC {
		t.Fatalf("rx status = %#x", v)
	}
	if f.Pending(3) != 1 {
		t.Fatalf("Pending = %d", f.Pending(3))
	}
	if c := f.Get(r.UDR); c != 'x' {
		t.Fatalf("UDR = %q", c)
	}
	if c := f.Get(r.UDR); c != 0 {
		t.Fatalf("empty UDR = %#x", c)
	}
	// Other ports are unaffected.
	if v := f.Get(regsOf(t, 0).UCSRA); v&(1<<r.RXC) != 0 {
		t.Fatalf("USART0 sees RXC")
	}
}

func TestStallTx(t *testing.T) {
	f := New()
	r := regsOf(t, 1)
	f.StallTx(1, 2)
	for i := 0; i < 2; i++ {
		if v := f.Get(r.UCSRA); v&(1<<r.UDRE) != 0 {
			t.Fatalf("poll %d: UDRE set during stall", i)
		}
	}
	if v := f.Get(r.UCSRA); v&(1<<r.UDRE) == 0 {
		t.Fatal("UDRE still clear after stall")
	}
}

func TestTransmitAndHooks(t *testing.T) {
	f := New()
	r := regsOf(t, 2)

	var got []byte
	var writes int
	f.OnTransmit = func(id uint8, c byte) {
		if id != 2 {
			t.Errorf("OnTransmit id = %d", id)
		}
		got = append(got, c)
	}
	f.OnWrite = func(Access) { writes++ }

	f.Set(r.UDR, 'o')
	f.Set(r.UDR, 'k')
	f.Set(r.UCSRB, 0x18)

	if string(got) != "ok" || string(f.Transmitted(2)) != "ok" {
		t.Fatalf("tx = %q / %q", got, f.Transmitted(2))
	}
	if writes != 3 {
		t.Fatalf("OnWrite calls = %d", writes)
	}
	if f.Peek(r.UCSRB) != 0x18 || f.Peek(r.UDR) != 0 {
		t.Fatalf("Peek UCSRB=%#x UDR=%#x", f.Peek(r.UCSRB), f.Peek(r.UDR))
	}
	if len(f.Writes()) != 3 {
		t.Fatalf("Writes = %v", f.Writes())
	}
}

func TestOnIdle(t *testing.T) {
	f := New()
	r := regsOf(t, 0)
	idle := 0
	f.OnIdle = func() { idle++ }

	for i := 0; i < idleAfter-1; i++ {
		f.Get(r.UCSRA)
	}
	if idle != 0 {
		t.Fatalf("idle fired early")
	}
	f.Get(r.UCSRA)
	if idle != 1 {
		t.Fatalf("idle = %d after %d empty polls", idle, idleAfter)
	}

	// A pending byte resets the run.
	f.Feed(0, 1)
	for i := 0; i < idleAfter; i++ {
		f.Get(r.UCSRA)
	}
	if idle != 1 {
		t.Fatalf("idle fired with data pending")
	}
}

func TestLogging(t *testing.T) {
	f := New()
	r := regsOf(t, 0)
	f.Set(r.UBRRL, 103)
	f.Get(r.UCSRA)
	if n := len(f.Accesses()); n != 2 {
		t.Fatalf("accesses = %d", n)
	}

	f.SetLogging(false)
	f.Set(r.UBRRL, 51)
	f.Set(r.UDR, 'z')
	if n := len(f.Accesses()); n != 2 {
		t.Fatalf("quiet accesses = %d", n)
	}
	if f.Peek(r.UBRRL) != 51 || string(f.Transmitted(0)) != "z" {
		t.Fatal("quiet mode dropped side effects")
	}

	f.SetLogging(true)
	f.ResetLog()
	if len(f.Accesses()) != 0 || len(f.Transmitted(0)) != 0 {
		t.Fatal("ResetLog kept entries")
	}
	if f.Peek(r.UBRRL) != 51 {
		t.Fatal("ResetLog cleared registers")
	}
}

func TestInvalidID(t *testing.T) {
	f := New()
	f.Feed(usart.Count, 'a')
	f.StallTx(usart.Count, 5)
	if f.Pending(usart.Count) != 0 || f.Transmitted(usart.Count) != nil {
		t.Fatal("invalid id accepted")
	}
}
