package jumplab

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing. Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	submitTime   time.Duration
	commandCount int
	vertexCount  int
}

// debugLog prints timing and command stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[jumplab] traverse: %v | submit: %v | total: %v\n",
		stats.traverseTime, stats.submitTime, stats.traverseTime+stats.submitTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[jumplab] commands: %d | vertices: %d\n",
		stats.commandCount, stats.vertexCount)
}

// Debugf prints a tagged line to stderr when debug mode is on.
func Debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[jumplab] "+format+"\n", args...)
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[jumplab] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[jumplab] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}

// countVertices sums the mesh vertices submitted this frame.
func countVertices(commands []RenderCommand) int {
	count := 0
	for i := range commands {
		count += len(commands[i].meshVerts)
	}
	return count
}
