package services

import (
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// MergeHistory projects persisted pairs and live exchanges into one transcript.
//
// Persisted pairs come first, ordered by timestamp ascending; live exchanges
// follow in submission order and are never re-sorted or interleaved. Neither
// input is modified.
func MergeHistory(persisted []domain.QuestionAnswerPair, live []domain.LiveExchange) []domain.DisplayEntry {
	entries := make([]domain.DisplayEntry, 0, len(persisted)+len(live))

	for _, pair := range domain.SortPairsOldestFirst(persisted) {
		entries = append(entries, domain.DisplayEntry{
			Question:  pair.Question,
			Answer:    pair.Answer,
			Status:    domain.ExchangeAnswered,
			Persisted: true,
			Timestamp: pair.Timestamp,
		})
	}

	for _, exchange := range live {
		entries = append(entries, domain.DisplayEntry{
			Question: exchange.Question,
			Answer:   exchange.Answer,
			Status:   exchange.Status,
			LocalID:  exchange.LocalID,
		})
	}

	return entries
}
