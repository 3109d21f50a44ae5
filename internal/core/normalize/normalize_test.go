package normalize

import "testing"

func TestTitle_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "identity", in: "夏の終わり", out: "夏の終わり"},
		{name: "empty", in: "", out: ""},
		{name: "utf8 repair drops invalid bytes", in: string([]byte{0xff, 'a', 0x80, ' ', 'b'}), out: "a b"},
		{name: "fullwidth ascii folds", in: "ＡＢＣ１２３", out: "ABC123"},
		{name: "halfwidth katakana widens", in: "ｶﾀｶﾅ", out: "カタカナ"},
		{name: "zero width removed", in: "ab\u200dc\ufeff", out: "abc"},
		{name: "controls removed", in: "a\x00b\x07c", out: "abc"},
		{name: "whitespace collapsed", in: "  a \n\t b\u3000c  ", out: "a b c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Title(tt.in); got != tt.out {
				t.Fatalf("Title(%q) = %q, want %q", tt.in, got, tt.out)
			}
		})
	}
}

func TestClip(t *testing.T) {
	if got := Clip("abcdef", 3); got != "abc…" {
		t.Fatalf("Clip = %q", got)
	}
	if got := Clip("夏の日", 3); got != "夏の日" {
		t.Fatalf("Clip exact = %q", got)
	}
	if got := Clip("abc", 0); got != "" {
		t.Fatalf("Clip zero = %q", got)
	}
}
