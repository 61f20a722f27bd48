//go:build avr

package main

import (
	"context"
	"time"

	"avrusart-go/boards"
	"avrusart-go/drivers/usart"
	"avrusart-go/internal/demo"
)

func main() {
	println("[usart] boot …")

	prof, err := boards.Load(boards.Default)
	if err != nil {
		println("[usart] board profile:", err.Error(), "- using fallback")
		prof = boards.Fallback()
	}

	d := usart.New(usart.MMIO{}, prof.DriverConfig())
	id := prof.Console.Port
	d.ConfigureFormat(id, prof.Console.Format)
	// No USART RX handler is installed here; keep the request line quiet.
	d.SetRxInterrupt(id, false)

	println("[usart] board", prof.Name, "clock", prof.ClockHz, "console", id, prof.Console.Format.String())
	time.Sleep(100 * time.Millisecond)

	c := demo.New(d, id, prof.Console.Format, demo.DefaultLayout)
	_ = c.Run(context.Background())
}
