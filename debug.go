package roomdesigner

import (
	"fmt"
	"os"
	"time"
)

// globalDebug enables diagnostic output on stderr. Set by SetDebugMode or
// Config.Debug.
var globalDebug bool

// SetDebugMode turns debug logging on or off for every designer in the
// process.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugf prints one "[roomdesigner]" line to stderr. Callers guard with
// globalDebug when building the arguments is not free.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[roomdesigner] "+format+"\n", args...)
}

// frameStats holds per-frame timing and draw metrics. Only populated when
// debug mode is on.
type frameStats struct {
	describeTime time.Duration
	sortTime     time.Duration
	submitTime   time.Duration
	planeCount   int
	polyCount    int
	spotCount    int
}

// debugLog prints frame stats to stderr.
func debugLog(stats frameStats) {
	if !globalDebug {
		return
	}
	total := stats.describeTime + stats.sortTime + stats.submitTime
	debugf("describe: %v | sort: %v | submit: %v | total: %v",
		stats.describeTime, stats.sortTime, stats.submitTime, total)
	debugf("planes: %d | polygons: %d | spots: %d",
		stats.planeCount, stats.polyCount, stats.spotCount)
}

// debugLogChange prints one store transition.
func debugLogChange(ch Change) {
	if !globalDebug {
		return
	}
	sel, _ := ch.After.Selected()
	debugf("store v%d %s index=%d items=%d selected=%d",
		ch.After.Version(), ch.Op, ch.Index, ch.After.Len(), sel)
}

// debugWarnOutsideRoom warns when an item's position leaves the room
// footprint. Movement is never clamped, so this is informational only.
func debugWarnOutsideRoom(it PlacedItem, room RoomConfig) {
	if !globalDebug {
		return
	}
	p := it.Position
	if p[0] < -room.Width/2 || p[0] > room.Width/2 || p[2] < -room.Length/2 || p[2] > room.Length/2 {
		debugf("warning: %q at (%.2f, %.2f, %.2f) is outside the %.1f x %.1f room",
			it.Product.Name, p[0], p[1], p[2], room.Width, room.Length)
	}
}
