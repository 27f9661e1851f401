package engine

// Tier identifies which matching strategy produced a ParsedAddress.
type Tier string

const (
	TierTrie Tier = "trie"
	TierLCS  Tier = "lcs"
	TierEdit Tier = "edit"
	TierNone Tier = "none"
)

// ParsedAddress is the result of classifying one raw address string.
// Absent levels are represented by empty strings rather than a pointer or
// an interface type; a level is "present" iff both its name and code
// fields are non-empty.
type ParsedAddress struct {
	ProvinceName string
	ProvinceCode string
	DistrictName string
	DistrictCode string
	WardName     string
	WardCode     string

	Confidence float64
	Tier       Tier
	Valid      bool

	// Residual holds the input tokens that belong to none of the matched
	// entity names — house numbers, street names, unmatched noise.
	// Informational only; never consulted by the matching pipeline itself.
	Residual string
}

func emptyResult() ParsedAddress {
	return ParsedAddress{Tier: TierNone, Valid: false}
}
