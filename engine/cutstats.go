package engine

import "fmt"

// SearchStats collects node and cutoff counts for one search.
type SearchStats struct {
	Nodes        uint64
	LeafEvals    uint64
	Terminals    uint64
	BetaCutoffs  uint64 // maximizing nodes that stopped early
	AlphaCutoffs uint64 // minimizing nodes that stopped early
}

// Cutoffs is the total number of pruned sibling lists.
func (s SearchStats) Cutoffs() uint64 { return s.BetaCutoffs + s.AlphaCutoffs }

// Lines renders the counters as UCI "info string" lines.
func (s SearchStats) Lines() []string {
	return []string{
		"info string Search statistics:",
		fmt.Sprintf("info string   Nodes: %d", s.Nodes),
		fmt.Sprintf("info string   Leaf evaluations: %d", s.LeafEvals),
		fmt.Sprintf("info string   Terminal positions: %d", s.Terminals),
		fmt.Sprintf("info string   Beta cutoffs: %d", s.BetaCutoffs),
		fmt.Sprintf("info string   Alpha cutoffs: %d", s.AlphaCutoffs),
	}
}
