package utils

import "strings"

func isRecipientSep(r rune) bool {
	return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// NormalizeRecipients turns the "email" field of an incoming request
// into a list of trimmed, non-empty addresses. Clients send either an
// array or a single string delimited by commas, semicolons or spaces.
func NormalizeRecipients(v interface{}) []string {
	var raw []string
	switch t := v.(type) {
	case string:
		raw = strings.FieldsFunc(t, isRecipientSep)
	case []string:
		raw = t
	case []interface{}: // decoded JSON array
		for _, e := range t {
			if s, ok := e.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	out := make([]string, 0, len(raw))
	for _, addr := range raw {
		addr = strings.TrimSpace(addr)
		if addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
