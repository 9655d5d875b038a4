package matching

import (
	"encoding/json"
	"sort"
	"strings"
)

// TagSet is a normalized set of labels: lowercased, trimmed, deduplicated and
// sorted. The zero value is the empty set.
type TagSet struct {
	tags []string
}

func NewTagSet(raw ...string) TagSet {
	if len(raw) == 0 {
		return TagSet{}
	}
	seen := make(map[string]struct{}, len(raw))
	tags := make([]string, 0, len(raw))
	for _, r := range raw {
		t := normalizeTag(r)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return TagSet{tags: tags}
}

// ParseTagSet decodes a stored JSON array of labels. A field that is null, is
// not an array, or holds anything other than strings yields the empty set.
func ParseTagSet(raw []byte) TagSet {
	if len(raw) == 0 {
		return TagSet{}
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return TagSet{}
	}
	strs := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			return TagSet{}
		}
		strs = append(strs, s)
	}
	return NewTagSet(strs...)
}

func normalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s TagSet) Len() int { return len(s.tags) }

func (s TagSet) Empty() bool { return len(s.tags) == 0 }

// Tags returns a copy of the normalized labels in ascending order.
func (s TagSet) Tags() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

func (s TagSet) MarshalJSON() ([]byte, error) {
	if s.tags == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.tags)
}

func (s *TagSet) UnmarshalJSON(b []byte) error {
	*s = ParseTagSet(b)
	return nil
}
