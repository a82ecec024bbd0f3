package model

// -----------------------------------------------------------------------------
// Feed Types
// -----------------------------------------------------------------------------

// FeedRecord is one entry from the PreStocks feed. Numeric fields are
// pointers because the feed omits them for unlisted assets.
type FeedRecord struct {
	Name             string   `json:"name"`
	Symbol           string   `json:"symbol"`
	Image            string   `json:"image,omitempty"`
	TokenPrice       *float64 `json:"tokenPrice,omitempty"`
	MarkPrice        *float64 `json:"markPrice,omitempty"`
	ImpliedValuation *float64 `json:"impliedValuation,omitempty"`
	MarkValuation    *float64 `json:"markValuation,omitempty"`
	Supply           *float64 `json:"supply,omitempty"`
	ContractAddress  string   `json:"contract_address,omitempty"`
	ExternalURL      string   `json:"external_url,omitempty"`
}

// Price returns the preferred display price: tokenPrice, falling back to
// markPrice. Nil when the record carries neither.
func (r *FeedRecord) Price() *float64 {
	if r.TokenPrice != nil {
		return r.TokenPrice
	}
	return r.MarkPrice
}

// Valuation returns impliedValuation, falling back to markValuation.
func (r *FeedRecord) Valuation() *float64 {
	if r.ImpliedValuation != nil {
		return r.ImpliedValuation
	}
	return r.MarkValuation
}

// -----------------------------------------------------------------------------
// Target Types
// -----------------------------------------------------------------------------

// TargetIdentity is one canonical asset the ticker always tries to display,
// plus the alias strings used to recognize it in the feed. Matching against
// aliases is case-insensitive.
type TargetIdentity struct {
	Key   string   // Canonical display name (e.g., "Anthropic")
	Match []string // Aliases matched against feed symbol/name
}

// ResolvedEntry pairs a target with the feed record currently matching it.
// Derived fresh from the current snapshot on every assembly; never stored.
type ResolvedEntry struct {
	Key    string
	Record *FeedRecord // nil when the target is absent from the feed
}

// -----------------------------------------------------------------------------
// Display Types
// -----------------------------------------------------------------------------

// ItemKind tags a DisplayItem variant.
type ItemKind string

const (
	KindBrand  ItemKind = "brand"
	KindToken  ItemKind = "token"
	KindFooter ItemKind = "footer"
)

// DisplayItem is one renderable unit in the ticker sequence. Token items
// carry formatted fields; Brand and Footer are pure markers. ChangePct is
// cosmetic display flavor regenerated on every assembly and must not be
// treated as real price movement.
type DisplayItem struct {
	Kind      ItemKind `json:"kind"`
	Key       string   `json:"key,omitempty"`
	Image     string   `json:"image,omitempty"`
	Price     string   `json:"price,omitempty"`
	Valuation string   `json:"valuation,omitempty"`
	ChangePct float64  `json:"changePct,omitempty"`
}
