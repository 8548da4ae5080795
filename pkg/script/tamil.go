package script

// Tamil letter classes. The perceived-character inventory is generated
// from these: 12 uyir vowels, the aytham, 18 mei (consonant + pulli) and
// 216 uyirmei (consonant alone or consonant + vowel sign), 247 letters
// in total.

var tamilUyir = []string{
	"அ", "ஆ", "இ", "ஈ", "உ", "ஊ",
	"எ", "ஏ", "ஐ", "ஒ", "ஓ", "ஔ",
}

var tamilConsonants = []string{
	"க", "ங", "ச", "ஞ", "ட", "ண",
	"த", "ந", "ப", "ம", "ய", "ர",
	"ல", "வ", "ழ", "ள", "ற", "ன",
}

var tamilSigns = []string{
	"ா", "ி", "ீ", "ு", "ூ",
	"ெ", "ே", "ை", "ொ", "ோ", "ௌ",
}

const (
	tamilAytham = "ஃ"
	tamilPulli  = "்"
)

// tamilCanonical unifies alternate codepoint spellings of the same
// perceived character before mapping. Vowel signs like \u0bca can be
// typed as a composed sign or as \u0bc6 + \u0bbe; both must map to the
// same unit. Escapes keep the pairs distinguishable in source.
var tamilCanonical = [][2]string{
	{"\u0bc6\u0bbe", "\u0bca"},
	{"\u0bc7\u0bbe", "\u0bcb"},
	{"\u0b92\u0bd7", "\u0b94"},
	{"\u0bc6\u0bd7", "\u0bcc"},
	{"\u0bcc\u0bcd", "\u0bc6\u0bb3\u0bcd"},
}

// TamilInventory generates the full perceived-character inventory in a
// fixed order, so mapped codepoint assignment is stable across runs.
func TamilInventory() []string {
	letters := make([]string, 0, 247)
	letters = append(letters, tamilUyir...)
	letters = append(letters, tamilAytham)
	for _, c := range tamilConsonants {
		letters = append(letters, c+tamilPulli)
		letters = append(letters, c)
		for _, s := range tamilSigns {
			letters = append(letters, c+s)
		}
	}
	return letters
}

// NewTamilMapper builds a Mapper over the generated Tamil inventory with
// the canonical unification rewrites applied on MapText.
func NewTamilMapper() (*Mapper, error) {
	return NewMapper(TamilInventory(), tamilCanonical)
}

// Uyir returns the vowel letters.
func Uyir() []string {
	out := make([]string, len(tamilUyir))
	copy(out, tamilUyir)
	return out
}

// Mei returns the pure consonant letters (consonant + pulli).
func Mei() []string {
	out := make([]string, 0, len(tamilConsonants))
	for _, c := range tamilConsonants {
		out = append(out, c+tamilPulli)
	}
	return out
}
