//go:build !cgo

package external

// InitializeLibpostal is a no-op when built without cgo/libpostal.
func InitializeLibpostal() {}

// LibpostalResult mirrors the cgo-backed type's shape so callers never need
// a build tag of their own; every field is zero when libpostal isn't
// linked in.
type LibpostalResult struct {
	House      string  `json:"house"`
	Road       string  `json:"road"`
	Unit       string  `json:"unit"`
	Level      string  `json:"level"`
	Ward       string  `json:"ward"`
	City       string  `json:"city"`
	Province   string  `json:"province"`
	Postcode   string  `json:"postcode"`
	Country    string  `json:"country"`
	Coverage   float64 `json:"coverage"`
	Confidence float64 `json:"confidence"`
	RawResult  string  `json:"raw_result"`
}

// LP is the backward-compatible struct kept alongside LibpostalResult.
type LP struct {
	House, Road, Unit, Level, Ward, City, Province string
	Coverage                                       float64
}

// ExtractWithLibpostal returns a zero-value result without linking
// libpostal. Callers gate on config.C.UseLibpostal before calling this, so
// reaching it without cgo is already a misconfiguration; returning an empty,
// zero-confidence result keeps that caller's "informational only" contract
// rather than panicking.
func ExtractWithLibpostal(raw string) LibpostalResult {
	return LibpostalResult{RawResult: raw}
}

// ExtractWithLibpostalFallback mirrors ExtractWithLibpostal's signature for
// the non-cgo build.
func ExtractWithLibpostalFallback(raw string, ruleBasedConfidence float64) LibpostalResult {
	return LibpostalResult{RawResult: raw}
}

// GetLPStruct returns the backward-compatible LP view of this result.
func (lr LibpostalResult) GetLPStruct() LP {
	return LP{
		House:    lr.House,
		Road:     lr.Road,
		Unit:     lr.Unit,
		Level:    lr.Level,
		Ward:     lr.Ward,
		City:     lr.City,
		Province: lr.Province,
		Coverage: lr.Coverage,
	}
}
