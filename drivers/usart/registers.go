package usart

// Register addresses and bit positions for the four USART peripherals of the
// ATmega640/1280/1281/2560/2561 family.

// Count is the number of USART instances on the ATmega2560.
const Count = 4

// Bit positions shared by all four instances (datasheet section 22.10).
const (
	// UCSRnA
	bitRXC  = 7
	bitUDRE = 5

	// UCSRnB
	bitRXCIE = 7
	bitRXEN  = 4
	bitTXEN  = 3

	// UCSRnC
	bitUPM1  = 5
	bitUPM0  = 4
	bitUSBS  = 3
	bitUCSZ1 = 2
	bitUCSZ0 = 1
)

// Regs describes one USART instance: the data-space address of each register
// it uses and the bit positions the driver touches. Values are fixed by the
// silicon; the table below is never mutated.
type Regs struct {
	UBRRH uint16 // baud rate, high nibble
	UBRRL uint16 // baud rate, low byte
	UCSRA uint16 // status
	UCSRB uint16 // control B (enables)
	UCSRC uint16 // control C (frame format)
	UDR   uint16 // data

	RXEN  uint8
	TXEN  uint8
	RXCIE uint8
	UDRE  uint8
	RXC   uint8
	UCSZ0 uint8
	UCSZ1 uint8
	UPM0  uint8
	UPM1  uint8
	USBS  uint8
}

func regs(base uint16) Regs {
	return Regs{
		UCSRA: base + 0,
		UCSRB: base + 1,
		UCSRC: base + 2,
		UBRRL: base + 4,
		UBRRH: base + 5,
		UDR:   base + 6,

		RXEN:  bitRXEN,
		TXEN:  bitTXEN,
		RXCIE: bitRXCIE,
		UDRE:  bitUDRE,
		RXC:   bitRXC,
		UCSZ0: bitUCSZ0,
		UCSZ1: bitUCSZ1,
		UPM0:  bitUPM0,
		UPM1:  bitUPM1,
		USBS:  bitUSBS,
	}
}

// USART0..USART3 register blocks (UCSRnA address).
var table = [Count]Regs{
	regs(0xC0),  // USART0
	regs(0xC8),  // USART1
	regs(0xD0),  // USART2
	regs(0x130), // USART3
}

// Lookup returns the register description for id. ok is false for id >= Count.
func Lookup(id uint8) (r Regs, ok bool) {
	if id >= Count {
		return Regs{}, false
	}
	return table[id], true
}

func bit(pos uint8) uint8 { return 1 << pos }
