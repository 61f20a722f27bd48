package timex

import "time"

// PeriodFromHz returns the period of one cycle at freqHz.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) time.Duration {
	if freqHz == 0 {
		freqHz = 1
	}
	return time.Duration(uint64(time.Second) / uint64(freqHz))
}

// FrameTime is how long a serial line at baud takes to shift one frame of
// bits bits, start and stop bits included.
func FrameTime(baud uint32, bits uint8) time.Duration {
	return PeriodFromHz(baud) * time.Duration(bits)
}
