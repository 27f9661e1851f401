package engine

// resolveCodesDownward fills in codes for whatever names are set, walking
// province -> district -> ward. A name that cannot be resolved against its
// already-resolved parent (or whose parent is itself unresolved) is
// dropped rather than left dangling — this is what keeps a ParsedAddress
// internally consistent at every call site, not just at the end of
// Classify.
func (e *Engine) resolveCodesDownward(r *ParsedAddress) {
	if r.ProvinceName != "" && r.ProvinceCode == "" {
		if code, ok := e.gaz.ResolveProvinceCode(r.ProvinceName); ok {
			r.ProvinceCode = code
		} else {
			r.ProvinceName = ""
		}
	}

	if r.DistrictName != "" && r.DistrictCode == "" {
		if r.ProvinceCode == "" {
			r.DistrictName = ""
		} else if code, ok := e.gaz.ResolveDistrictCode(r.DistrictName, r.ProvinceCode); ok {
			r.DistrictCode = code
		} else {
			r.DistrictName = ""
		}
	}

	if r.WardName != "" && r.WardCode == "" {
		if r.DistrictCode == "" {
			r.WardName = ""
		} else if code, ok := e.gaz.ResolveWardCode(r.WardName, r.DistrictCode); ok {
			r.WardCode = code
		} else {
			r.WardName = ""
		}
	}
}

// applyGracefulDegradation enforces the final consistency check: an
// invalid lower level is cleared rather than failing the whole result, and
// Valid is set solely by whether a province was recovered. A result with
// no province at all is not worth returning — every fallback tier requires
// at least a province to emit anything.
func (e *Engine) applyGracefulDegradation(r *ParsedAddress) {
	if !e.gaz.IsValidTriple(r.WardCode, r.DistrictCode, r.ProvinceCode) {
		r.WardName, r.WardCode = "", ""
		if !e.gaz.IsValidTriple("", "", r.ProvinceCode) {
			r.DistrictName, r.DistrictCode = "", ""
		} else if r.DistrictCode != "" && !e.gaz.IsValidTriple("", r.DistrictCode, r.ProvinceCode) {
			r.DistrictName, r.DistrictCode = "", ""
		}
	}
	r.Valid = r.ProvinceCode != ""
}
