// Package boards resolves per-board operating parameters: the CPU clock that
// feeds the USART baud generators and the console port settings.
package boards

import (
	"encoding/json"
	"sort"

	"avrusart-go/drivers/usart"
	"avrusart-go/errcode"
	"avrusart-go/types"
)

// Default names the profile used by firmware builds. Override at link time:
//
//	tinygo build -ldflags "-X avrusart-go/boards.Default=mega2560_8mhz" ...
var Default = "mega2560"

// Profile describes one board.
type Profile struct {
	Name    string  `json:"name"`
	ClockHz uint32  `json:"clock_hz"`
	Console Console `json:"console"`
}

// Console is the port an interactive session runs on.
type Console struct {
	Port   uint8              `json:"port"`
	Format types.SerialFormat `json:"format"`
}

// EmbeddedProfileLookup allows overriding how profiles are resolved.
var EmbeddedProfileLookup = func(name string) ([]byte, bool) {
	b, ok := embeddedProfiles[name]
	return b, ok
}

// Load decodes the named profile and fills defaults: DefaultClockHz for a
// missing clock and 9600 8N1 for a missing console format.
func Load(name string) (Profile, error) {
	raw, ok := EmbeddedProfileLookup(name)
	if !ok || len(raw) == 0 {
		return Profile{}, &errcode.E{C: errcode.UnknownBoard, Op: "boards.Load", Msg: name}
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return Profile{}, &errcode.E{C: errcode.InvalidPayload, Op: "boards.Load", Msg: name, Err: err}
	}
	if p.Name == "" {
		p.Name = name
	}
	if p.ClockHz == 0 {
		p.ClockHz = usart.DefaultClockHz
	}
	if p.Console.Port >= usart.Count {
		return Profile{}, &errcode.E{C: errcode.UnknownPort, Op: "boards.Load", Msg: name}
	}
	p.Console.Format = p.Console.Format.Defaults()
	return p, nil
}

// Fallback is the profile used when nothing else resolves: Mega 2560 at
// 16 MHz, console on USART0 at 9600 8N1.
func Fallback() Profile {
	return Profile{
		Name:    "fallback",
		ClockHz: usart.DefaultClockHz,
		Console: Console{Format: types.SerialFormat{}.Defaults()},
	}
}

// DriverConfig returns the usart configuration for the board.
func (p Profile) DriverConfig() usart.Config {
	return usart.Config{ClockHz: p.ClockHz}
}

// Names lists the embedded profiles, sorted.
func Names() []string {
	out := make([]string, 0, len(embeddedProfiles))
	for k := range embeddedProfiles {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
