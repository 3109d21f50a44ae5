package testkit

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()

	MustPanic(t, func() {
		panic("boom")
	})
}

func TestMustContain(t *testing.T) {
	t.Parallel()

	MustContain(t, "remaining=3 worker=1", "worker=1")
}

func TestMustReadFile(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "1_p0.jpg")
	if err := os.WriteFile(p, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := MustReadFile(t, p); got != "img" {
		t.Fatalf("MustReadFile = %q", got)
	}
}
