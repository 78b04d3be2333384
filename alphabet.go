package digitalrain

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// Alphabet selects the characters a rain is made of.
type Alphabet int

const (
	Numbers Alphabet = iota
	Latin
	Cyrillic
	Japanese
	Chinese
	Greek
)

// Alphabets lists every alphabet in declaration order.
var Alphabets = []Alphabet{Numbers, Latin, Cyrillic, Japanese, Chinese, Greek}

var alphabetNames = [...]string{
	Numbers:  "numbers",
	Latin:    "latin",
	Cyrillic: "cyrillic",
	Japanese: "japanese",
	Chinese:  "chinese",
	Greek:    "greek",
}

//go:embed charsets.yaml
var charsetsYAML []byte

var charsets = mustLoadCharsets(charsetsYAML)

func mustLoadCharsets(data []byte) map[Alphabet][]rune {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		panic(fmt.Sprintf("charsets.yaml: %v", err))
	}
	table := make(map[Alphabet][]rune, len(Alphabets))
	for _, a := range Alphabets {
		chars, ok := raw[a.String()]
		if !ok || chars == "" {
			panic(fmt.Sprintf("charsets.yaml: no characters for %s", a))
		}
		// Counted in runes, not bytes, so multi-byte scripts index correctly.
		table[a] = []rune(chars)
	}
	return table
}

// ParseAlphabet converts user input into an Alphabet.
func ParseAlphabet(s string) (Alphabet, error) {
	for i, name := range alphabetNames {
		if name == s {
			return Alphabet(i), nil
		}
	}
	return Numbers, fmt.Errorf("unknown alphabet %q (valid alphabets: %s)", s, strings.Join(alphabetNames[:], ", "))
}

func (a Alphabet) String() string {
	if a < 0 || int(a) >= len(alphabetNames) {
		return fmt.Sprintf("Alphabet(%d)", int(a))
	}
	return alphabetNames[a]
}

// Charset returns a copy of the characters belonging to a. Unknown
// alphabets have no characters.
func (a Alphabet) Charset() []rune {
	chars := charsets[a]
	out := make([]rune, len(chars))
	copy(out, chars)
	return out
}

// Contains reports whether r is part of the alphabet.
func (a Alphabet) Contains(r rune) bool {
	for _, c := range charsets[a] {
		if c == r {
			return true
		}
	}
	return false
}

// RandomString returns n characters sampled uniformly, with replacement, from
// the charset of a.
func RandomString(rnd Rand, a Alphabet, n int) []rune {
	chars := charsets[a]
	if n <= 0 || len(chars) == 0 {
		return nil
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = chars[rnd.Intn(len(chars))]
	}
	return out
}
