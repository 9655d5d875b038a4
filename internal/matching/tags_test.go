package matching

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNewTagSetNormalizes(t *testing.T) {
	got := NewTagSet("  React ", "react", "", "   ", "UI/UX", "node").Tags()
	want := []string{"node", "react", "ui/ux"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tags: want=%v got=%v", want, got)
	}
}

func TestParseTagSet(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: []string{}},
		{name: "null", raw: "null", want: []string{}},
		{name: "object", raw: `{"a":"b"}`, want: []string{}},
		{name: "string", raw: `"react"`, want: []string{}},
		{name: "mixed entries", raw: `["react", 3, null]`, want: []string{}},
		{name: "garbage", raw: `[react`, want: []string{}},
		{name: "valid", raw: `["Python", " Data Science ", "python"]`, want: []string{"data science", "python"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := ParseTagSet([]byte(tc.raw)).Tags()
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("ParseTagSet(%q): want=%v got=%v", tc.raw, tc.want, got)
			}
		})
	}
}

func TestTagSetJSON(t *testing.T) {
	b, err := json.Marshal(TagSet{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "[]" {
		t.Fatalf("empty set json: got=%s", b)
	}

	var s TagSet
	if err := json.Unmarshal([]byte(`["B","a"]`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := s.Tags(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unmarshal tags: got=%v", got)
	}
}
