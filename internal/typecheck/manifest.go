package typecheck

import (
	"github.com/leo-core/leoc/internal/diagnostics"
	"github.com/leo-core/leoc/internal/manifest"
	"github.com/leo-core/leoc/internal/source"
)

// CheckManifest rejects a manifest whose declared network is not "aleo",
// and cross-checks each dependency's declared program name against the
// imported program it actually names (spec §7 "stub-name-mismatch",
// grounded on the original's stub_name_mismatch rule: "the name you used as
// a dependency in program.json matches the name you used to import the
// program"). manifest.ParseManifest accepts any value, per spec §6.1's
// CST/semantic split; this is the semantic half of that split.
//
// dependencyOrder is the program names this compilation actually resolved
// as imports, in the same "imports before importers" order the manifest's
// Dependencies list is expected to follow (symbols.Global.Order gives this
// directly). A manifest entry naming a program absent from that prefix, at
// the position it claims to occupy, is the stub/program name disagreement
// the original's rule exists to catch.
func (c *Checker) CheckManifest(m *manifest.Manifest, span source.Span, dependencyOrder []string) {
	if m.Network != "aleo" {
		c.Sink.Error(diagnostics.CodeUnknownNetwork, span, "unknown network %s", m.Network)
	}
	for i, dep := range m.Dependencies {
		if dep.Network != "aleo" {
			c.Sink.Error(diagnostics.CodeUnknownNetwork, span, "unknown network %s in dependency %s", dep.Network, dep.Program)
		}
		if i >= len(dependencyOrder) || dependencyOrder[i] != dep.Program {
			c.Sink.Error(diagnostics.CodeStubNameMismatch, span, "manifest dependency %s does not match the imported program at that position", dep.Program)
		}
	}
}
