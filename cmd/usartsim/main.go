//go:build !avr

// Command usartsim runs the number console against a simulated ATmega2560
// USART register file, with the host terminal as the far end of the line.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"avrusart-go/boards"
	"avrusart-go/drivers/usart"
	"avrusart-go/errcode"
	"avrusart-go/internal/demo"
	"avrusart-go/internal/regsim"
	"avrusart-go/x/timex"
)

const ctrlC = 0x03

func main() {
	board := flag.String("board", boards.Default, "board profile ("+strings.Join(boards.Names(), ", ")+")")
	portFlag := flag.Int("port", -1, "USART to use (default: board console port)")
	trace := flag.Bool("trace", false, "log register writes to stderr")
	pace := flag.Bool("pace", false, "hold each transmitted byte for its frame time at the configured baud")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("usartsim: ")

	prof, err := boards.Load(*board)
	if err != nil {
		log.Fatalf("board %q: %v (%s)", *board, err, errcode.Of(err))
	}
	id := prof.Console.Port
	if *portFlag >= 0 {
		if *portFlag >= usart.Count {
			log.Fatalf("port %d: %s", *portFlag, errcode.UnknownPort)
		}
		id = uint8(*portFlag)
	}

	sim := regsim.New()
	sim.SetLogging(false)
	sim.OnIdle = func() { time.Sleep(time.Millisecond) }
	var frame time.Duration
	if *pace {
		f := prof.Console.Format
		frame = timex.FrameTime(f.Baud, f.FrameBits())
	}
	sim.OnTransmit = func(_ uint8, c byte) {
		_, _ = os.Stdout.Write([]byte{c})
		if frame > 0 {
			time.Sleep(frame)
		}
	}
	if *trace {
		sim.OnWrite = func(a regsim.Access) { log.Print(a.String()) }
	}

	layout := demo.DefaultLayout
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			log.Fatalf("raw mode: %v", err)
		}
		defer term.Restore(fd, old)
		if w, h, err := term.GetSize(fd); err == nil {
			layout = demo.Layout{Rows: h, Cols: w}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := usart.New(sim, prof.DriverConfig())
	d.ConfigureFormat(id, prof.Console.Format)
	d.SetRxInterrupt(id, false)

	quit := make(chan struct{})
	go pump(sim, id, quit)

	done := make(chan error, 1)
	go func() { done <- demo.New(d, id, prof.Console.Format, layout).Run(ctx) }()

	select {
	case <-quit:
	case err := <-done:
		if err != nil && err != context.Canceled {
			log.Printf("console: %v", err)
		}
	}
	_, _ = os.Stdout.WriteString("\x1b[0m\r\n")
}

// pump feeds terminal input into the RX queue of USART id until EOF or
// Ctrl-C, then closes quit. On EOF it first lets the console drain what was
// queued, so piped input is processed.
func pump(sim *regsim.File, id uint8, quit chan<- struct{}) {
	defer close(quit)
	buf := make([]byte, 64)
	for {
		n, err := os.Stdin.Read(buf)
		for _, c := range buf[:n] {
			if c == ctrlC {
				return
			}
			// Terminals send DEL for the backspace key.
			if c == 0x7F {
				c = '\b'
			}
			sim.Feed(id, c)
		}
		if err != nil {
			for i := 0; i < 100 && sim.Pending(id) > 0; i++ {
				time.Sleep(10 * time.Millisecond)
			}
			time.Sleep(50 * time.Millisecond)
			return
		}
	}
}
