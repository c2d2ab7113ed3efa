package fonts

import "testing"

func TestLoad(t *testing.T) {
	for _, name := range []string{"regular", "embed:medium", " BOLD "} {
		data, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if len(data) < 4 {
			t.Fatalf("Load(%q) returned %d bytes", name, len(data))
		}
	}
	if _, err := Load("Inter-Regular.ttf"); err == nil {
		t.Fatal("expected error for unknown font")
	}
}

func TestForWeight(t *testing.T) {
	tests := map[int]string{0: Regular, 400: Regular, 500: Medium, 550: Medium, 600: Bold, 900: Bold}
	for w, want := range tests {
		if got := ForWeight(w); got != want {
			t.Errorf("ForWeight(%d) = %s, want %s", w, got, want)
		}
	}
}
