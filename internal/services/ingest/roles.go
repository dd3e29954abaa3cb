package ingest

import "strings"

// DetectRoles picks the consumer and SME dataset out of a set of file
// names. Names containing "consumer" or "credit" take the consumer role,
// "sme" or "business" the SME role. When detection fails the first two
// files are used positionally, and a lone file is reused for both roles.
// The second return is false when no file is usable at all.
func DetectRoles(files []string) (consumer, sme string, ok bool) {
	for _, f := range files {
		lower := strings.ToLower(f)
		switch {
		case consumer == "" && (strings.Contains(lower, "consumer") || strings.Contains(lower, "credit")):
			consumer = f
		case sme == "" && (strings.Contains(lower, "sme") || strings.Contains(lower, "business")):
			sme = f
		}
	}

	if consumer == "" || sme == "" {
		switch {
		case len(files) >= 2:
			consumer, sme = files[0], files[1]
		case len(files) == 1:
			consumer, sme = files[0], files[0]
		default:
			return "", "", false
		}
	}
	return consumer, sme, true
}
