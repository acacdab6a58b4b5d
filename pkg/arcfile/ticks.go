// SPDX-License-Identifier: MPL-2.0

package arcfile

import "time"

// Entry timestamps are stored as ticks: 100-nanosecond intervals counted
// from 0001-01-01T00:00:00 UTC.
const (
	ticksPerSecond = 10_000_000

	// unixEpochTicks is the tick count at 1970-01-01T00:00:00 UTC.
	unixEpochTicks = 621_355_968_000_000_000
)

// TimeFromTicks converts a stored tick count to a UTC time.
func TimeFromTicks(ticks int64) time.Time {
	sec := ticks/ticksPerSecond - unixEpochTicks/ticksPerSecond
	nsec := (ticks % ticksPerSecond) * 100
	return time.Unix(sec, nsec).UTC()
}

// TicksFromTime converts a time to the stored tick encoding. Inverse of
// TimeFromTicks for times representable in whole 100 ns steps.
func TicksFromTime(t time.Time) int64 {
	return (t.Unix()+unixEpochTicks/ticksPerSecond)*ticksPerSecond + int64(t.Nanosecond())/100
}
