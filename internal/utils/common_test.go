package utils

import "testing"

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"1,2,3", []string{"1", "2", "3"}},
		{" 1 , 2 ,", []string{"1", "2"}},
		{",,", []string{}},
		{"", []string{}},
	}
	for _, tt := range tests {
		got := SplitAndTrim(tt.in, ",")
		if len(got) != len(tt.want) {
			t.Errorf("SplitAndTrim(%q): got %q, want %q", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitAndTrim(%q): got %q, want %q", tt.in, got, tt.want)
			}
		}
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/0/contents", "[0].contents"},
		{"#/tasks/1/children/0/done", "tasks[1].children[0].done"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		if got := JSONPointerToPath(tt.in); got != tt.want {
			t.Errorf("JSONPointerToPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
