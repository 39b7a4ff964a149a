package services

import "github.com/google/uuid"

// SanitizeLinks filters proposed note links down to ids of notes that exist
// in the vault (allowed), dropping the note's own id and duplicates while
// keeping input order. The result is never nil.
func SanitizeLinks(proposed []string, allowed []string, selfID string) []string {
	valid := make(map[string]struct{}, len(allowed))
	for _, id := range allowed {
		valid[canonicalID(id)] = struct{}{}
	}
	self := canonicalID(selfID)

	out := make([]string, 0, len(proposed))
	seen := make(map[string]struct{}, len(proposed))
	for _, raw := range proposed {
		id := canonicalID(raw)
		if id == self {
			continue
		}
		if _, ok := valid[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// canonicalID returns the lowercase hyphenated form of a UUID, or s as-is
// when it is not one.
func canonicalID(s string) string {
	if u, err := uuid.Parse(s); err == nil {
		return u.String()
	}
	return s
}

// parseID is canonicalID for identifiers supplied by callers: anything that
// is not a UUID cannot name a stored row.
func parseID(s string) (string, bool) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
