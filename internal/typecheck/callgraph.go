package typecheck

import (
	"fmt"
	"strings"

	"github.com/leo-core/leoc/internal/ast"
	"github.com/leo-core/leoc/internal/diagnostics"
	"github.com/leo-core/leoc/internal/source"
	"github.com/leo-core/leoc/internal/symbols"
)

// Frame is one hop of a call-graph cycle: the function entered and the
// call-site span that reached it. Grounded on the teacher's
// evaluator.CallFrame/vm.CallFrame (a named call-stack frame carrying a
// source location), adapted from a runtime call stack to a static
// call-graph trace so a cyclic-dependency diagnostic can name the whole
// chain rather than just one function in it.
type Frame struct {
	Program  string
	Function string
	Call     source.Span // span of the call expression that entered Function; source.None for the cycle's start
}

func (f Frame) String() string { return f.Program + "/" + f.Function }

// callGraph is a directed graph over locally defined functions (spec §4.2
// "the checker also builds a directed call graph over locally defined
// functions ... imports are by construction acyclic and excluded").
type callGraph struct {
	edges map[symbols.Key][]callEdge
}

type callEdge struct {
	to   symbols.Key
	call source.Span
}

func newCallGraph() *callGraph {
	return &callGraph{edges: make(map[symbols.Key][]callEdge)}
}

func (g *callGraph) addNode(k symbols.Key) {
	if _, ok := g.edges[k]; !ok {
		g.edges[k] = nil
	}
}

func (g *callGraph) addEdge(from, to symbols.Key, call source.Span) {
	g.edges[from] = append(g.edges[from], callEdge{to: to, call: call})
}

// cyclePath returns the Frame chain of a cycle reachable from start, or
// nil if no cycle exists reachable from start. The chain begins and ends
// at the function whose re-entry closes the cycle, which need not be
// start: its first Frame is that function as first entered, followed by
// one Frame per edge of the cycle.
func (g *callGraph) cyclePath(start symbols.Key) []Frame {
	const (
		white = iota
		gray
		black
	)
	color := make(map[symbols.Key]int)
	var path []Frame
	var found []Frame

	var visit func(k symbols.Key, call source.Span) bool
	visit = func(k symbols.Key, call source.Span) bool {
		color[k] = gray
		path = append(path, Frame{Program: k.Program, Function: k.Name, Call: call})
		for _, e := range g.edges[k] {
			switch color[e.to] {
			case white:
				if visit(e.to, e.call) {
					return true
				}
			case gray:
				for i, f := range path {
					if f.Program == e.to.Program && f.Function == e.to.Name {
						found = append([]Frame{}, path[i:]...)
						found = append(found, Frame{Program: e.to.Program, Function: e.to.Name, Call: e.call})
						return true
					}
				}
			}
		}
		path = path[:len(path)-1]
		color[k] = black
		return false
	}
	visit(start, source.None)
	return found
}

// formatCycle renders a Frame chain as
// "f -> g (called at <span>) -> f (called at <span>)", where every Frame
// after the first carries the span of the call that entered it, naming the whole call chain instead of just the pair of
// functions that close the cycle.
func formatCycle(chain []Frame) string {
	names := make([]string, len(chain))
	for i, f := range chain {
		names[i] = f.Function
		if i > 0 && !chain[i].Call.IsNone() {
			names[i] = fmt.Sprintf("%s (called at %s)", f.Function, chain[i].Call)
		}
	}
	return strings.Join(names, " -> ")
}

// checkCallGraphAcyclic rejects mutual recursion among this program's own
// functions (spec §4.2, §7 "cyclic-function-dependency", §8 invariant 2).
func (c *Checker) checkCallGraphAcyclic(scope *ast.ProgramScope) {
	seen := make(map[symbols.Key]bool)
	for _, fn := range scope.Functions {
		k := key(scope.Program, fn.Name)
		if seen[k] {
			continue
		}
		if cycle := c.callGraph.cyclePath(k); cycle != nil {
			for _, f := range cycle {
				seen[symbols.Key{Program: f.Program, Name: f.Function}] = true
			}
			c.Sink.Error(diagnostics.CodeCyclicFunctionDependency, fn.Span(), "cyclic call dependency: %s", formatCycle(cycle))
		}
	}
}

// checkStructShape rejects structurally forbidden struct/record members
// (spec §3.4: no tuple member, transitively; records never nested in
// structs/records; no bare Future member). Optional-typed members are not
// checked.
func (c *Checker) checkStructShape(st *ast.StructDecl) {
	for _, f := range st.Fields {
		c.checkMemberShape(st, f)
	}
}
