package usart_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tinygo.org/x/drivers"

	"avrusart-go/drivers/usart"
	"avrusart-go/errcode"
)

func TestPort_InvalidID(t *testing.T) {
	d, _ := newTestDriver(usart.Config{})
	if p, err := d.Port(usart.Count); p != nil || !errors.Is(err, errcode.UnknownPort) {
		t.Fatalf("Port(%d) = %v, %v; want nil, unknown_port", usart.Count, p, err)
	}
}

func TestPort_ReadIsNonBlocking(t *testing.T) {
	d, sim := newTestDriver(usart.Config{})
	p, err := d.Port(1)
	if err != nil {
		t.Fatalf("Port: %v", err)
	}
	var u drivers.UART = p

	buf := make([]byte, 8)
	if n, err := u.Read(buf); n != 0 || err != nil {
		t.Fatalf("Read on idle line: n=%d err=%v; want 0,nil", n, err)
	}
	if u.Buffered() != 0 {
		t.Fatalf("Buffered on idle line = %d", u.Buffered())
	}

	sim.FeedString(1, "ABC")
	if u.Buffered() != 1 {
		t.Fatalf("Buffered = %d, want 1", u.Buffered())
	}
	n, err := u.Read(buf)
	if err != nil || n != 3 || string(buf[:n]) != "ABC" {
		t.Fatalf("Read = %d %q %v; want 3 \"ABC\" nil", n, buf[:n], err)
	}
}

func TestPort_ReadByteAndWrite(t *testing.T) {
	d, sim := newTestDriver(usart.Config{})
	p, _ := d.Port(3)

	if _, err := p.ReadByte(); !errors.Is(err, errcode.BufferEmpty) {
		t.Fatalf("ReadByte on idle line err = %v, want buffer_empty", err)
	}
	sim.Feed(3, 'Z')
	if b, err := p.ReadByte(); err != nil || b != 'Z' {
		t.Fatalf("ReadByte = %q, %v", b, err)
	}

	if n, err := p.Write([]byte("hi\x00")); n != 3 || err != nil {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if err := p.WriteByte('!'); err != nil {
		t.Fatalf("WriteByte: %v", err)
	}
	if got := string(sim.Transmitted(3)); got != "hi\x00!" {
		t.Fatalf("Transmitted = %q", got)
	}
	if p.ID() != 3 {
		t.Fatalf("ID = %d", p.ID())
	}
}

func TestRecvByteContext_Cancelled(t *testing.T) {
	d, sim := newTestDriver(usart.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := d.RecvByteContext(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	r := mustLookup(t, 0)
	for _, a := range sim.Accesses() {
		if a.Addr == r.UDR {
			t.Fatalf("data register touched after cancellation")
		}
	}
	if errcode.Of(ctx.Err()) != errcode.Canceled {
		t.Fatalf("errcode.Of = %q", errcode.Of(ctx.Err()))
	}
}

func TestRecvByteContext_UnblocksOnData(t *testing.T) {
	d, sim := newTestDriver(usart.Config{})
	sim.SetLogging(false)
	p, _ := d.Port(2)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go func() {
		time.Sleep(20 * time.Millisecond)
		sim.Feed(2, 'q')
	}()

	b, err := p.ReadByteContext(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != 'q' {
		t.Fatalf("got %q want %q", b, 'q')
	}
}

func TestRecvByteContext_Deadline(t *testing.T) {
	d, sim := newTestDriver(usart.Config{})
	sim.SetLogging(false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := d.RecvByteContext(ctx, 1)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if errcode.Of(err) != errcode.Timeout {
		t.Fatalf("errcode.Of = %q, want timeout", errcode.Of(err))
	}
}

func TestSendByteContext(t *testing.T) {
	d, sim := newTestDriver(usart.Config{})
	sim.SetLogging(false)

	if err := d.SendByteContext(context.Background(), 0, 'a'); err != nil {
		t.Fatalf("SendByteContext: %v", err)
	}

	sim.StallTx(0, 1<<30)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := d.SendByteContext(ctx, 0, 'b'); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if got := string(sim.Transmitted(0)); got != "a" {
		t.Fatalf("Transmitted = %q, want %q", got, "a")
	}

	if err := d.SendByteContext(context.Background(), 9, 'c'); !errors.Is(err, errcode.UnknownPort) {
		t.Fatalf("invalid id err = %v", err)
	}
	if _, err := d.RecvByteContext(context.Background(), 9); !errors.Is(err, errcode.UnknownPort) {
		t.Fatalf("invalid id err = %v", err)
	}
}
