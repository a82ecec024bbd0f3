package ticker

import (
	"math/rand"

	"github.com/jopli11/PreStocks-Tracker/internal/format"
	"github.com/jopli11/PreStocks-Tracker/internal/match"
	"github.com/jopli11/PreStocks-Tracker/internal/model"
)

// ChangeSource produces the cosmetic change percentage attached to token
// items. Injectable so tests can pin a fixed value.
type ChangeSource func() float64

// RandomChange returns a pseudo-random percentage in [-3, 3). It is not
// derived from price history; it exists purely as display flavor.
func RandomChange() float64 {
	return rand.Float64()*6 - 3
}

// Assembler builds display sequences from feed snapshots against a fixed,
// ordered target list.
type Assembler struct {
	targets []model.TargetIdentity
	change  ChangeSource
}

// NewAssembler creates an Assembler. A nil change source defaults to
// RandomChange.
func NewAssembler(targets []model.TargetIdentity, change ChangeSource) *Assembler {
	if change == nil {
		change = RandomChange
	}
	return &Assembler{
		targets: targets,
		change:  change,
	}
}

// Assemble resolves each target against records and builds the final
// sequence: Brand, matched tokens in target order, Footer, duplicated
// end-to-end. Targets absent from the feed are silently omitted. The
// result length is always 2*(2+k) for k matched targets.
func (a *Assembler) Assemble(records []model.FeedRecord) []model.DisplayItem {
	block := make([]model.DisplayItem, 0, len(a.targets)+2)
	block = append(block, model.DisplayItem{Kind: model.KindBrand})

	for _, target := range a.targets {
		rec := match.Resolve(target, records)
		if rec == nil {
			continue
		}
		block = append(block, model.DisplayItem{
			Kind:      model.KindToken,
			Key:       target.Key,
			Image:     rec.Image,
			Price:     format.Currency(rec.Price()),
			Valuation: format.Compact(rec.Valuation()),
			ChangePct: a.change(),
		})
	}

	block = append(block, model.DisplayItem{Kind: model.KindFooter})

	return append(block, block...)
}
