// Package match resolves loosely-identified feed records to canonical
// target identities via case-insensitive alias matching.
package match

import (
	"strings"

	"github.com/jopli11/PreStocks-Tracker/internal/model"
)

// Resolve returns the first record whose symbol or name, upper-cased,
// exactly equals any upper-cased alias of target. Feed order breaks ties
// among duplicates. Returns nil when no record matches. Records with
// missing symbol and name never match.
func Resolve(target model.TargetIdentity, records []model.FeedRecord) *model.FeedRecord {
	for i := range records {
		rec := &records[i]
		symbol := strings.ToUpper(rec.Symbol)
		name := strings.ToUpper(rec.Name)

		for _, alias := range target.Match {
			a := strings.ToUpper(alias)
			if a == "" {
				continue
			}
			if symbol == a || name == a {
				return rec
			}
		}
	}
	return nil
}

// ResolveAll resolves every target against the feed, preserving target
// order. Unmatched targets yield entries with a nil Record.
func ResolveAll(targets []model.TargetIdentity, records []model.FeedRecord) []model.ResolvedEntry {
	entries := make([]model.ResolvedEntry, 0, len(targets))
	for _, t := range targets {
		entries = append(entries, model.ResolvedEntry{
			Key:    t.Key,
			Record: Resolve(t, records),
		})
	}
	return entries
}
