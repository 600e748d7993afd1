package main

import "testing"

func TestConfigPath(t *testing.T) {
	cases := []struct {
		flagPath string
		args     []string
		lensSet  bool
		want     string
	}{
		{"", nil, false, defaultConfig},
		{"", nil, true, ""},
		{"a.json", []string{"b.json"}, true, "a.json"},
		{"", []string{"b.json"}, false, "b.json"},
		{"", []string{"b.json"}, true, "b.json"},
	}
	for _, c := range cases {
		if got := configPath(c.flagPath, c.args, c.lensSet); got != c.want {
			t.Fatalf("configPath(%q, %v, %v) = %q, want %q", c.flagPath, c.args, c.lensSet, got, c.want)
		}
	}
}
