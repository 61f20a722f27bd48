package boards

// -----------------------------------------------------------------------------
// Embedded profiles
//
// Key: board name (Default or the -board flag of the host tools).
// Val: raw JSON for that board.
// -----------------------------------------------------------------------------

const profMega2560 = `{
  "name": "mega2560",
  "clock_hz": 16000000,
  "console": {
    "port": 0,
    "format": {"baud": 9600, "data_bits": 8, "parity": "none", "stop_bits": 1}
  }
}`

// 3.3 V boards running from the internal 8 MHz oscillator.
const profMega2560At8MHz = `{
  "name": "mega2560_8mhz",
  "clock_hz": 8000000,
  "console": {
    "port": 0,
    "format": {"baud": 9600, "data_bits": 8, "parity": "none", "stop_bits": 1}
  }
}`

const profMega2560At20MHz = `{
  "name": "mega2560_20mhz",
  "clock_hz": 20000000,
  "console": {
    "port": 1,
    "format": {"baud": 19200, "data_bits": 8, "parity": "even", "stop_bits": 2}
  }
}`

var embeddedProfiles = map[string][]byte{
	"mega2560":       []byte(profMega2560),
	"mega2560_8mhz":  []byte(profMega2560At8MHz),
	"mega2560_20mhz": []byte(profMega2560At20MHz),
}
