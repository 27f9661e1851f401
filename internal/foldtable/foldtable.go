// Package foldtable folds Vietnamese accented letters to their ASCII base
// letter via an explicit code-point table.
//
// This deliberately does not use golang.org/x/text/unicode/norm or any other
// Unicode normalization form: Đ/đ are precomposed code points with no
// canonical decomposition into D/d plus a combining mark, so an NFD-strip-
// combining-marks pipeline silently leaves them untouched. The table below
// is exhaustive over the Vietnamese vowel+tone inventory and the stroked D,
// so folding is a single map lookup per rune with no locale dependency.
package foldtable

// table maps every accented Vietnamese rune to its ASCII base letter.
// Case is preserved by the table rather than folded, so callers that also
// want case-insensitivity lowercase before or after folding.
var table = buildTable()

func buildTable() map[rune]rune {
	m := make(map[rune]rune, 160)

	add := func(base rune, variants string) {
		for _, r := range variants {
			m[r] = base
		}
	}

	add('a', "áàảãạăắằẳẵặâấầẩẫậ")
	add('A', "ÁÀẢÃẠĂẮẰẲẴẶÂẤẦẨẪẬ")
	add('e', "éèẻẽẹêếềểễệ")
	add('E', "ÉÈẺẼẸÊẾỀỂỄỆ")
	add('i', "íìỉĩị")
	add('I', "ÍÌỈĨỊ")
	add('o', "óòỏõọôốồổỗộơớờởỡợ")
	add('O', "ÓÒỎÕỌÔỐỒỔỖỘƠỚỜỞỠỢ")
	add('u', "úùủũụưứừửữự")
	add('U', "ÚÙỦŨỤƯỨỪỬỮỰ")
	add('y', "ýỳỷỹỵ")
	add('Y', "ÝỲỶỸỴ")
	add('d', "đ")
	add('D', "Đ")

	return m
}

// Fold replaces every Vietnamese accented rune in s with its ASCII base
// letter. Runes not present in the table (including plain ASCII, digits,
// punctuation, and any other script) pass through unchanged.
func Fold(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if base, ok := table[r]; ok {
			out = append(out, base)
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// Size reports the number of mapped code points, for diagnostics/tests.
func Size() int {
	return len(table)
}
