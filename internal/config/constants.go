// Package config collects the language-level constants referenced by the
// type checker, lowering pass and code generator, grounded on the
// teacher's internal/config/constants.go (plain exported const blocks,
// grouped by concern, rather than a parsed configuration format).
package config

// DefaultNetwork is the network suffix assumed when a program name is
// given without one (spec GLOSSARY "network suffix").
const DefaultNetwork = "aleo"

// Self/block/network built-in member names (spec §4.2 member access on
// the self/block/network intrinsic objects).
const (
	SelfCallerMember  = "caller"
	SelfSignerMember  = "signer"
	BlockHeightMember = "height"
	NetworkIdMember   = "id"
)

// Hash and commitment algorithm variants recognized by the checker (spec
// §4.4 intrinsics); any other name is CodeUnknownIntrinsic rather than an
// emitted opcode (spec §9 open question).
var KnownHashVariants = []string{
	"bhp256", "bhp512", "bhp768", "bhp1024",
	"pedersen64", "pedersen128",
	"poseidon2", "poseidon4", "poseidon8",
	"keccak256", "keccak384", "keccak512",
	"sha3_256", "sha3_384", "sha3_512",
}

// Program-level limits (spec §4.2 "too many transitions/mappings").
const (
	MaxTransitionsPerProgram = 31
	MaxMappingsPerProgram    = 31
)

// MaxArrayLength bounds every array type's element count (spec §3.2
// "Array"), the sibling limit to CodeArrayEmpty's lower bound of one.
const MaxArrayLength = 32

// Integer const-param argument count: spec §3.3's inline functions take at
// most this many const generic parameters.
const MaxConstParams = 4

func IsKnownHashVariant(name string) bool {
	for _, v := range KnownHashVariants {
		if v == name {
			return true
		}
	}
	return false
}
