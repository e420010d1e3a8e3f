package crypto

import (
	"errors"
	"fmt"
	"strings"
)

// CharacterClass is a named category of characters used to build a password alphabet.
type CharacterClass int

const (
	Uppercase CharacterClass = iota
	Lowercase
	Digit
	Punctuation
)

const (
	uppercaseChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars   = "abcdefghijklmnopqrstuvwxyz"
	digitChars       = "0123456789"
	punctuationChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

var ErrUnknownClass = errors.New("unknown character class")

// AllClasses lists every character class in alphabet order.
func AllClasses() []CharacterClass {
	return []CharacterClass{Uppercase, Lowercase, Digit, Punctuation}
}

// Chars returns the fixed alphabet of the class.
func (c CharacterClass) Chars() string {
	switch c {
	case Uppercase:
		return uppercaseChars
	case Lowercase:
		return lowercaseChars
	case Digit:
		return digitChars
	case Punctuation:
		return punctuationChars
	}
	return ""
}

func (c CharacterClass) String() string {
	switch c {
	case Uppercase:
		return "uppercase"
	case Lowercase:
		return "lowercase"
	case Digit:
		return "digits"
	case Punctuation:
		return "punctuation"
	}
	return fmt.Sprintf("CharacterClass(%d)", int(c))
}

// ParseCharacterClass maps a user-supplied name such as "upper" or "digits" to a class.
func ParseCharacterClass(name string) (CharacterClass, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "upper", "uppercase", "u":
		return Uppercase, nil
	case "lower", "lowercase", "l":
		return Lowercase, nil
	case "digit", "digits", "number", "numbers", "d":
		return Digit, nil
	case "punct", "punctuation", "symbol", "symbols", "p":
		return Punctuation, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClass, name)
}

// ParseCharacterClasses parses a comma separated list of class names.
// Empty items are ignored.
func ParseCharacterClasses(list string) ([]CharacterClass, error) {
	var classes []CharacterClass
	for _, item := range strings.Split(list, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		c, err := ParseCharacterClass(item)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, nil
}

// Alphabet returns the union of the given classes' characters in fixed class order.
// Repeated classes contribute once.
func Alphabet(classes ...CharacterClass) string {
	var enabled [4]bool
	for _, c := range classes {
		if c >= Uppercase && c <= Punctuation {
			enabled[c] = true
		}
	}

	var b strings.Builder
	for _, c := range AllClasses() {
		if enabled[c] {
			b.WriteString(c.Chars())
		}
	}
	return b.String()
}
