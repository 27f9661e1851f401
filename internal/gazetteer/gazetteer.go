// Package gazetteer builds and serves the Hierarchy Index: name/code maps,
// parent links, and per-parent candidate lists for the three administrative
// levels. It is built once from the reference data and is read-only
// thereafter — every lookup here is a plain map/slice access, never I/O.
package gazetteer

import (
	"fmt"

	"github.com/vnaddr/classifier/internal/matchers"
	"github.com/vnaddr/classifier/internal/textnorm"
)

// Province, District, and Ward are the reference-data entities loaded at
// construction time. Display names carry their original diacritics; codes
// are opaque identifiers assigned by the source data.
type Province struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type District struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	ProvinceCode string `json:"province_code"`
}

type Ward struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	DistrictCode string `json:"district_code"`
}

// candidateEntity is the tagged-variant replacement for the source's mixed
// scalar/list collision maps: every name->code(s) relationship is a small
// slice of (display name, parent code) pairs, regardless of whether the
// name is unique or collides.
type candidateEntity struct {
	DisplayName string
	Code        string
	ParentCode  string
}

// Index is the constructed, immutable Hierarchy Index.
type Index struct {
	provinceNameToCode map[string]string // normalized name -> code, 1:1

	districtNameToCodes map[string][]candidateEntity // normalized name -> candidates
	wardNameToCodes     map[string][]candidateEntity

	districtToProvince map[string]string // code -> code
	wardToDistrict     map[string]string

	districtsOfProvince map[string][]matchers.Candidate // province code -> candidate list
	wardsOfDistrict     map[string][]matchers.Candidate // district code -> candidate list

	provinceDisplayByCode map[string]string
	districtDisplayByCode map[string]string
	wardDisplayByCode     map[string]string

	// Display names in the exact order passed to Build, preserved
	// separately from the maps above (whose iteration order is
	// unspecified) because trie insertion-order-wins and abbreviation
	// ambiguity resolution both depend on a deterministic, caller-supplied
	// load order.
	provinceNames []string
	districtNames []string
	wardNames     []string

	provinceCandidates []matchers.Candidate
}

// Build constructs the Hierarchy Index from reference triples, validating
// referential integrity: every district's province code and every ward's
// district code must resolve to a loaded entity. A violation is a
// construction failure — the index is not returned.
func Build(provinces []Province, districts []District, wards []Ward) (*Index, error) {
	idx := &Index{
		provinceNameToCode:    make(map[string]string, len(provinces)),
		districtNameToCodes:   make(map[string][]candidateEntity),
		wardNameToCodes:       make(map[string][]candidateEntity),
		districtToProvince:    make(map[string]string, len(districts)),
		wardToDistrict:        make(map[string]string, len(wards)),
		districtsOfProvince:   make(map[string][]matchers.Candidate),
		wardsOfDistrict:       make(map[string][]matchers.Candidate),
		provinceDisplayByCode: make(map[string]string, len(provinces)),
		districtDisplayByCode: make(map[string]string, len(districts)),
		wardDisplayByCode:     make(map[string]string, len(wards)),
	}

	provinceCodes := make(map[string]struct{}, len(provinces))
	for _, p := range provinces {
		norm := textnorm.AggressiveNormalize(p.Name)
		if existing, ok := idx.provinceNameToCode[norm]; ok && existing != p.Code {
			return nil, fmt.Errorf("gazetteer: province name %q is not unique (codes %s and %s)", p.Name, existing, p.Code)
		}
		idx.provinceNameToCode[norm] = p.Code
		idx.provinceDisplayByCode[p.Code] = p.Name
		idx.provinceNames = append(idx.provinceNames, p.Name)
		idx.provinceCandidates = append(idx.provinceCandidates, matchers.Candidate{
			DisplayName: p.Name,
			Tokens:      textnorm.Tokenize(norm),
		})
		provinceCodes[p.Code] = struct{}{}
	}

	districtCodes := make(map[string]struct{}, len(districts))
	for _, d := range districts {
		if _, ok := provinceCodes[d.ProvinceCode]; !ok {
			return nil, fmt.Errorf("gazetteer: district %q (%s) references unknown province code %s", d.Name, d.Code, d.ProvinceCode)
		}
		norm := textnorm.AggressiveNormalize(d.Name)
		idx.districtNameToCodes[norm] = append(idx.districtNameToCodes[norm], candidateEntity{
			DisplayName: d.Name, Code: d.Code, ParentCode: d.ProvinceCode,
		})
		idx.districtToProvince[d.Code] = d.ProvinceCode
		idx.districtDisplayByCode[d.Code] = d.Name
		idx.districtNames = append(idx.districtNames, d.Name)
		districtCodes[d.Code] = struct{}{}

		idx.districtsOfProvince[d.ProvinceCode] = append(idx.districtsOfProvince[d.ProvinceCode], matchers.Candidate{
			DisplayName: d.Name,
			Tokens:      textnorm.Tokenize(norm),
		})
	}

	for _, w := range wards {
		if _, ok := districtCodes[w.DistrictCode]; !ok {
			return nil, fmt.Errorf("gazetteer: ward %q (%s) references unknown district code %s", w.Name, w.Code, w.DistrictCode)
		}
		norm := textnorm.AggressiveNormalize(w.Name)
		idx.wardNameToCodes[norm] = append(idx.wardNameToCodes[norm], candidateEntity{
			DisplayName: w.Name, Code: w.Code, ParentCode: w.DistrictCode,
		})
		idx.wardToDistrict[w.Code] = w.DistrictCode
		idx.wardDisplayByCode[w.Code] = w.Name
		idx.wardNames = append(idx.wardNames, w.Name)

		idx.wardsOfDistrict[w.DistrictCode] = append(idx.wardsOfDistrict[w.DistrictCode], matchers.Candidate{
			DisplayName: w.Name,
			Tokens:      textnorm.Tokenize(norm),
		})
	}

	return idx, nil
}

// ResolveProvinceCode is the 1:1 province lookup.
func (idx *Index) ResolveProvinceCode(provinceName string) (string, bool) {
	code, ok := idx.provinceNameToCode[textnorm.AggressiveNormalize(provinceName)]
	return code, ok
}

// ResolveDistrictCode picks the district_code among the candidates sharing
// districtName whose parent matches provinceCode.
func (idx *Index) ResolveDistrictCode(districtName, provinceCode string) (string, bool) {
	for _, c := range idx.districtNameToCodes[textnorm.AggressiveNormalize(districtName)] {
		if c.ParentCode == provinceCode {
			return c.Code, true
		}
	}
	return "", false
}

// ResolveWardCode picks the ward_code among the candidates sharing
// wardName whose parent matches districtCode.
func (idx *Index) ResolveWardCode(wardName, districtCode string) (string, bool) {
	for _, c := range idx.wardNameToCodes[textnorm.AggressiveNormalize(wardName)] {
		if c.ParentCode == districtCode {
			return c.Code, true
		}
	}
	return "", false
}

// IsValidTriple reports whether the given codes (any of which may be
// empty, meaning "not specified") form a consistent parent chain.
func (idx *Index) IsValidTriple(wardCode, districtCode, provinceCode string) bool {
	if provinceCode == "" {
		return false
	}
	if districtCode != "" {
		if idx.districtToProvince[districtCode] != provinceCode {
			return false
		}
	}
	if wardCode != "" {
		if districtCode == "" || idx.wardToDistrict[wardCode] != districtCode {
			return false
		}
	}
	return true
}

// AllProvinces returns the candidate list for LCS/edit-distance search over
// every loaded province — used when no province is yet known.
func (idx *Index) AllProvinces() []matchers.Candidate {
	return idx.provinceCandidates
}

// DistrictsIn returns the candidate list for LCS/edit-distance search
// scoped to one province.
func (idx *Index) DistrictsIn(provinceCode string) []matchers.Candidate {
	return idx.districtsOfProvince[provinceCode]
}

// WardsIn returns the candidate list scoped to one district.
func (idx *Index) WardsIn(districtCode string) []matchers.Candidate {
	return idx.wardsOfDistrict[districtCode]
}

// ProvinceName, DistrictName, and WardName resolve a code back to its
// display name.
func (idx *Index) ProvinceName(code string) (string, bool) {
	name, ok := idx.provinceDisplayByCode[code]
	return name, ok
}

func (idx *Index) DistrictName(code string) (string, bool) {
	name, ok := idx.districtDisplayByCode[code]
	return name, ok
}

func (idx *Index) WardName(code string) (string, bool) {
	name, ok := idx.wardDisplayByCode[code]
	return name, ok
}

// DistrictParentProvince and WardParentDistrict expose the parent links
// directly.
func (idx *Index) DistrictParentProvince(districtCode string) (string, bool) {
	code, ok := idx.districtToProvince[districtCode]
	return code, ok
}

func (idx *Index) WardParentDistrict(wardCode string) (string, bool) {
	code, ok := idx.wardToDistrict[wardCode]
	return code, ok
}

// AllProvinceNames, AllDistrictNames, and AllWardNames return the display
// names loaded for each level, in load order — used to build the trie and
// the admin-prefix abbreviation dictionaries at construction time.
func (idx *Index) AllProvinceNames() []string { return idx.provinceNames }
func (idx *Index) AllDistrictNames() []string { return idx.districtNames }
func (idx *Index) AllWardNames() []string     { return idx.wardNames }
