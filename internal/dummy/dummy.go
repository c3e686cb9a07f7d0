// Package dummy generates pronounceable placeholder nouns used by the
// annotated-text builders to stand in for math, verbatim literals, and
// opaque commands so the grammar checker still sees a well-formed sentence.
package dummy

import "strconv"

// wordSet holds the four inflected forms a language needs: singular/plural,
// each split by whether the following article must be the vowel-initial form.
type wordSet struct {
	singularConsonant string
	singularVowel     string
	pluralConsonant   string
	pluralVowel       string
}

// words is keyed by a BCP-47-like short code. Entries are invented tokens,
// not real words, so they can never collide with prose in the source
// (invariant 6 in the testable-properties list).
var words = map[string]wordSet{
	"en": {singularConsonant: "Ina", singularVowel: "Aia", pluralConsonant: "Inas", pluralVowel: "Aias"},
	"de": {singularConsonant: "Ina", singularVowel: "Aia", pluralConsonant: "Inen", pluralVowel: "Aien"},
	"fr": {singularConsonant: "Ina", singularVowel: "Aia", pluralConsonant: "Inas", pluralVowel: "Aias"},
	"es": {singularConsonant: "Ina", singularVowel: "Aia", pluralConsonant: "Inas", pluralVowel: "Aias"},
	"pt": {singularConsonant: "Ina", singularVowel: "Aia", pluralConsonant: "Inas", pluralVowel: "Aias"},
	"it": {singularConsonant: "Ina", singularVowel: "Aia", pluralConsonant: "Ine", pluralVowel: "Aie"},
	"nl": {singularConsonant: "Ina", singularVowel: "Aia", pluralConsonant: "Inas", pluralVowel: "Aias"},
}

func wordsFor(language string) wordSet {
	if ws, ok := words[language]; ok {
		return ws
	}
	return words["en"]
}

// Generate produces a deterministic singular dummy noun for the given
// language and index, picking the vowel- or consonant-initial form.
func Generate(language string, index int, startsWithVowel bool) string {
	ws := wordsFor(language)
	word := ws.singularConsonant
	if startsWithVowel {
		word = ws.singularVowel
	}
	return word + strconv.Itoa(index)
}

// GeneratePlural is Generate's plural counterpart, used for the
// "pluralDummy" command action.
func GeneratePlural(language string, index int, startsWithVowel bool) string {
	ws := wordsFor(language)
	word := ws.pluralConsonant
	if startsWithVowel {
		word = ws.pluralVowel
	}
	return word + strconv.Itoa(index)
}
