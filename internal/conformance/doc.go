// Package conformance checks sansio.Protocol implementors against the
// contract and proves the delegation adapters are transparent.
//
// Ownership boundary:
// - reference fixtures (Splitter, Countdown)
// - operation scripts and their TOML vector format
// - trace recording, expectation checks and trace comparison
//
// Scripts run against a virtual clock: every instant is an offset from a
// caller supplied epoch, so traces from different runs compare exactly.
package conformance
