// Package alias enumerates the searchable normalized keys that should route
// to a given administrative display name: the name itself, its
// concatenation, initials, and a handful of first/last-token contractions.
// It is a pure function of its input tokens — no regex state is shared with
// the normalizer that produced them.
package alias

import "strings"

// Generate returns the deduplicated set of alias keys for a display name
// whose aggressively-normalized form tokenizes to tokens. Order is
// significant only in that it matches the enumeration in the component
// design; callers that need a set should dedupe on insert (which this
// function already does for its own output).
func Generate(tokens []string) []string {
	n := len(tokens)
	if n == 0 {
		return nil
	}

	seen := make(map[string]struct{}, 8)
	var out []string
	add := func(s string) {
		if s == "" {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	// 1. join-with-spaces
	add(strings.Join(tokens, " "))
	// 2. concatenation
	add(strings.Join(tokens, ""))

	if n >= 2 {
		// 3. initials
		add(initials(tokens, "", ""))
		// 4. dotted initials
		add(initials(tokens, ".", ""))
	}

	if n >= 3 {
		// 5. first + last
		add(tokens[0] + " " + tokens[n-1])
	}

	if n >= 2 {
		first := firstRune(tokens[0])
		rest := strings.Join(tokens[1:], " ")
		// 6. first-initial-plus-rest with dot
		add(first + ". " + rest)
		// 7. first-initial-plus-rest without dot
		add(first + " " + rest)
	}

	return out
}

// initials builds t0[0]<sep>t1[0]<sep>...<end> for the given tokens, used
// both for bare initials (sep="", end="") and dotted initials (sep=".",
// end=""), e.g. "hcm" and "h.c.m".
func initials(tokens []string, sep, end string) string {
	var b strings.Builder
	for i, tok := range tokens {
		b.WriteString(firstRune(tok))
		if i < len(tokens)-1 {
			b.WriteString(sep)
		} else if end != "" {
			b.WriteString(end)
		}
	}
	return b.String()
}

func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
