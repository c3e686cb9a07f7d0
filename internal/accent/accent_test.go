package accent

import "testing"

func TestKindFromCommandChar(t *testing.T) {
	tests := []struct {
		name   string
		char   byte
		want   Kind
		wantOK bool
	}{
		{name: "grave", char: '`', want: Grave, wantOK: true},
		{name: "acute", char: '\'', want: Acute, wantOK: true},
		{name: "cedilla", char: 'c', want: Cedilla, wantOK: true},
		{name: "ring", char: 'r', want: Ring, wantOK: true},
		{name: "unknown", char: 'z', wantOK: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := KindFromCommandChar(test.char)
			if ok != test.wantOK {
				t.Fatalf("KindFromCommandChar(%q) ok = %v, want %v", test.char, ok, test.wantOK)
			}
			if ok && got != test.want {
				t.Errorf("KindFromCommandChar(%q) = %v, want %v", test.char, got, test.want)
			}
		})
	}
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		letter byte
		want   rune
		wantOK bool
	}{
		{name: "grave A", kind: Grave, letter: 'A', want: 'À', wantOK: true},
		{name: "grave lowercase a", kind: Grave, letter: 'a', want: 'à', wantOK: true},
		{name: "acute Y", kind: Acute, letter: 'Y', want: 'Ý', wantOK: true},
		{name: "tilde E (special-cased)", kind: Tilde, letter: 'E', want: 'Ẽ', wantOK: true},
		{name: "cedilla only defined for C", kind: Cedilla, letter: 'A', wantOK: false},
		{name: "cedilla C", kind: Cedilla, letter: 'C', want: 'Ç', wantOK: true},
		{name: "ring A", kind: Ring, letter: 'A', want: 'Å', wantOK: true},
		{name: "dot N is undefined", kind: DotAbove, letter: 'N', wantOK: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := Compose(test.kind, test.letter)
			if ok != test.wantOK {
				t.Fatalf("Compose(%v, %q) ok = %v, want %v", test.kind, test.letter, ok, test.wantOK)
			}
			if ok && got != test.want {
				t.Errorf("Compose(%v, %q) = %U, want %U", test.kind, test.letter, got, test.want)
			}
		})
	}
}

func TestComposeDotlessI(t *testing.T) {
	got, ok := ComposeDotlessI(Acute)
	if !ok {
		t.Fatal("ComposeDotlessI(Acute) should be defined")
	}
	if got != 'í' {
		t.Errorf("ComposeDotlessI(Acute) = %U, want %U (í)", got, 'í')
	}
}

func TestNationalLetter(t *testing.T) {
	tests := []struct {
		name   string
		letter string
		want   rune
		wantOK bool
	}{
		{name: "AA", letter: "AA", want: 'Å', wantOK: true},
		{name: "aa", letter: "aa", want: 'å', wantOK: true},
		{name: "ss", letter: "ss", want: 'ß', wantOK: true},
		{name: "unknown", letter: "zz", wantOK: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, ok := NationalLetter(test.letter)
			if ok != test.wantOK {
				t.Fatalf("NationalLetter(%q) ok = %v, want %v", test.letter, ok, test.wantOK)
			}
			if ok && got != test.want {
				t.Errorf("NationalLetter(%q) = %q, want %q", test.letter, got, test.want)
			}
		})
	}
}
