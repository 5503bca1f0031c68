package deduction

import (
	"time"

	"punchpay/attendance"
)

// Shift is the expected start of work inferred from the first punch.
type Shift int

const (
	ShiftElevenAM Shift = iota
	ShiftThreePM
)

// threePMCutoff is the first hour of the day that belongs to the afternoon shift.
const threePMCutoff = 14

var shiftTable = [...]struct {
	label string
	start time.Duration
}{
	ShiftElevenAM: {label: "11:00 AM", start: 11 * time.Hour},
	ShiftThreePM:  {label: "03:00 PM", start: 15 * time.Hour},
}

// AssignShift maps a present first punch to its shift.
func AssignShift(firstPunch attendance.Punch) Shift {
	if firstPunch.Hour() < threePMCutoff {
		return ShiftElevenAM
	}
	return ShiftThreePM
}

// Start returns the shift start as an offset from midnight.
func (s Shift) Start() time.Duration {
	return shiftTable[s].start
}

func (s Shift) String() string {
	return shiftTable[s].label
}
