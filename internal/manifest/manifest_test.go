package manifest

import "testing"

func TestParseManifestValid(t *testing.T) {
	src := `
program: token
network: aleo
dependencies:
  - program: credits
    network: aleo
`
	m, err := ParseManifest([]byte(src), "program.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Program != "token" {
		t.Errorf("program = %q, want token", m.Program)
	}
	if m.Network != "aleo" {
		t.Errorf("network = %q, want aleo", m.Network)
	}
	if len(m.Dependencies) != 1 || m.Dependencies[0].Program != "credits" {
		t.Fatalf("unexpected dependencies: %#v", m.Dependencies)
	}
}

func TestParseManifestUnknownNetworkAccepted(t *testing.T) {
	src := "program: token\nnetwork: testnet3\n"
	m, err := ParseManifest([]byte(src), "program.yaml")
	if err != nil {
		t.Fatalf("ParseManifest should accept any network value, got error: %v", err)
	}
	if m.Network != "testnet3" {
		t.Errorf("network = %q, want testnet3", m.Network)
	}
}

func TestParseManifestMalformedYAML(t *testing.T) {
	_, err := ParseManifest([]byte("program: [unterminated"), "program.yaml")
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
