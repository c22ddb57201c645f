package search

import "testing"

func TestPrefixPattern(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"robotics", "^robotics"},
		{"c++ study", `^c\+\+ study`},
		{"ml (group)", `^ml \(group\)`},
		{".*", `^\.\*`},
		{"", "^"},
	}
	for _, tc := range cases {
		if got := PrefixPattern(tc.in); got != tc.want {
			t.Errorf("PrefixPattern(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
