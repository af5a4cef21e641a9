package cgen

// MacroToken returns s with every character outside of [A-Za-z0-9]
// replaced by '_', upper cased. e.g. "Vendor-ID" => "VENDOR_ID".
// Output has one byte per input character, distinct names may
// give the same token ("A-B" and "A.B").
func MacroToken(s string) string {
	return sanitize(s, true)
}

// IdentToken is the same as [MacroToken] but lower cased.
// e.g. "Vendor-ID" => "vendor_id"
func IdentToken(s string) string {
	return sanitize(s, false)
}

func sanitize(s string, upper bool) string {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			if upper {
				r -= 'a' - 'A'
			}
		case r >= 'A' && r <= 'Z':
			if !upper {
				r += 'a' - 'A'
			}
		case r >= '0' && r <= '9':
		default:
			r = '_'
		}
		b = append(b, byte(r))
	}
	return string(b)
}
