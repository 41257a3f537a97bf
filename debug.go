package arcade

import (
	"fmt"
	"io"
	"os"
)

// debugOut is where debug output goes. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// debugLog prints timing and pair stats to stderr.
func (w *World) debugLog(stats StepStats) {
	if !w.debug {
		return
	}
	_, _ = fmt.Fprintf(debugOut,
		"[arcade] integrate: %v | resolve: %v | total: %v\n",
		stats.IntegrateTime, stats.ResolveTime, stats.IntegrateTime+stats.ResolveTime)
	_, _ = fmt.Fprintf(debugOut,
		"[arcade] bodies: %d | skipped: %d | candidates: %d | collisions: %d | overlaps: %d | embedded: %d\n",
		stats.Bodies, stats.Skipped, stats.Candidates, stats.Collisions, stats.Overlaps, stats.Embedded)
}

// debugDiagnostic prints a skipped body or pair to stderr.
func (w *World) debugDiagnostic(b, other *Body, err error) {
	if other != nil {
		_, _ = fmt.Fprintf(debugOut, "[arcade] warning: pair %s/%s skipped: %v\n", b, other, err)
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[arcade] warning: body %s skipped: %v\n", b, err)
}

// debugEmbeddedThreshold is the embedded-pair count above which a step logs
// a tunneling warning.
const debugEmbeddedThreshold = 16

func (w *World) debugCheckEmbedded() {
	if w.stats.Embedded > debugEmbeddedThreshold {
		_, _ = fmt.Fprintf(debugOut, "[arcade] warning: %d embedded pairs this step (threshold %d); bodies may be tunneling\n",
			w.stats.Embedded, debugEmbeddedThreshold)
	}
}
