//go:build avr

package usart

import (
	"runtime/volatile"
	"unsafe"
)

// MMIO accesses the USART registers in the AVR data space directly.
type MMIO struct{}

var _ Bus = MMIO{}

func reg8(addr uint16) *volatile.Register8 {
	return (*volatile.Register8)(unsafe.Pointer(uintptr(addr)))
}

func (MMIO) Get(addr uint16) uint8 { return reg8(addr).Get() }

func (MMIO) Set(addr uint16, v uint8) { reg8(addr).Set(v) }
