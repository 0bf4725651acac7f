// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-ballot/ballot"
	"github.com/danielhkuo/quickly-ballot/models"
)

// RankProposals orders proposals for display once votes are tallied
func RankProposals(proposals []ballot.Proposal, leader ballot.Leader, votesCast uint64) []models.RankedProposal {
	ranked := make([]ballot.Proposal, len(proposals))
	copy(ranked, proposals)

	// Sort by ranking criteria (lexicographic order)
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		// 1. The tallied winner comes first, even when tied on count
		aWins, bWins := a.ID == leader.ProposalID, b.ID == leader.ProposalID
		if aWins != bWins {
			return aWins
		}

		// 2. More votes wins
		if a.VoteCount != b.VoteCount {
			return a.VoteCount > b.VoteCount
		}

		// 3. Stable tie-breaking by proposal ID (ascending)
		return a.ID < b.ID
	})

	results := make([]models.RankedProposal, len(ranked))
	for i, p := range ranked {
		results[i] = models.RankedProposal{
			Rank:      i + 1, // 1-indexed ranking
			RankLabel: humanize.Ordinal(i + 1),
			Proposal:  p,
			Share:     share(p.VoteCount, votesCast),
			Winner:    p.ID == leader.ProposalID,
		}
	}
	return results
}

// share is the fraction of all votes cast, 0 when nobody voted
func share(count, total uint64) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(count) / float64(total)
}
