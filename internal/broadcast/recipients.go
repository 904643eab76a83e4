package broadcast

import "github.com/ratelab/greencast/internal/phone"

// PrepareRecipients maps raw sheet values to recipient numbers and
// deduplicates them, preserving source order. Values that normalize to a
// valid 11-digit number are stored in normalized form; everything else is
// kept verbatim, so the delivery engine derives the transport address
// from exactly what the sheet carried.
func PrepareRecipients(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		number, ok := phone.Normalize(v)
		if !ok {
			number = v
		}
		if _, dup := seen[number]; dup {
			continue
		}
		seen[number] = struct{}{}
		out = append(out, number)
	}
	return out
}
