package sheets

import "strings"

var redactedKeys = map[string]struct{}{
	"password": {},
}

const maxLoggedContent = 64

// redact menyiapkan payload untuk log audit: password disembunyikan, konten base64 dipotong.
func redact(payload any) any {
	switch p := payload.(type) {
	case Record:
		return redactMap(p)
	case map[string]any:
		return redactMap(p)
	case []Record:
		out := make([]any, len(p))
		for i, r := range p {
			out[i] = redactMap(r)
		}
		return out
	default:
		return payload
	}
}

func redactMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if _, hidden := redactedKeys[strings.ToLower(k)]; hidden {
			out[k] = "***"
			continue
		}
		if k == "content" {
			s := Stringify(v)
			if len(s) > maxLoggedContent {
				out[k] = s[:maxLoggedContent] + "…"
				continue
			}
		}
		out[k] = v
	}
	return out
}
