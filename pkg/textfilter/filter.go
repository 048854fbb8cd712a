package textfilter

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// replacements maps profanity to family-friendly alternatives. The name
// generators embed reader-submitted words verbatim in their output, so
// anything a reader types passes through this table first. Slurs are
// censored outright rather than softened.
var replacements = map[string]string{
	"fuck":         "fudge",
	"shit":         "shoot",
	"damn":         "dang",
	"hell":         "heck",
	"ass":          "butt",
	"bitch":        "jerk",
	"bastard":      "jerk",
	"crap":         "crud",
	"piss":         "ticked",
	"cock":         "[censored]",
	"dick":         "jerk",
	"pussy":        "[censored]",
	"tits":         "[censored]",
	"whore":        "[censored]",
	"slut":         "[censored]",
	"fag":          "[censored]",
	"retard":       "[censored]",
	"nigger":       "[censored]",
	"nigga":        "[censored]",
	"spic":         "[censored]",
	"chink":        "[censored]",
	"kike":         "[censored]",
	"motherfucker": "mother-trucker",
	"goddamn":      "gosh-dang",
	"asshole":      "jerk",
	"dumbass":      "dummy",
	"jackass":      "jerk",
	"bullshit":     "baloney",
	"horseshit":    "nonsense",
	"dipshit":      "dummy",
	"shithead":     "jerk",
	"dickhead":     "jerk",
	"prick":        "jerk",
	"douche":       "jerk",
	"douchebag":    "jerk",
}

// ProfanityFilter replaces profanity with family-friendly alternatives.
// Matching is case-insensitive on word boundaries, so embedded fragments
// ("classical") are left alone.
type ProfanityFilter struct {
	regexes map[string]*regexp.Regexp
	title   cases.Caser
}

// NewProfanityFilter creates a new profanity filter
func NewProfanityFilter() *ProfanityFilter {
	pf := &ProfanityFilter{
		regexes: make(map[string]*regexp.Regexp, len(replacements)),
		title:   cases.Title(language.English),
	}
	for word := range replacements {
		pf.regexes[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return pf
}

// FilterText replaces every listed word in text, preserving the case shape
// of the original match.
func (pf *ProfanityFilter) FilterText(text string) string {
	result := text
	for word, replacement := range replacements {
		result = pf.regexes[word].ReplaceAllStringFunc(result, func(match string) string {
			return pf.preserveCase(match, replacement)
		})
	}
	return result
}

// ContainsProfanity checks if the text contains any listed word.
func (pf *ProfanityFilter) ContainsProfanity(text string) bool {
	for _, regex := range pf.regexes {
		if regex.MatchString(text) {
			return true
		}
	}
	return false
}

// preserveCase applies the case pattern of the original word to the
// replacement: all-caps stays all-caps, title case stays title case,
// everything else goes lowercase.
func (pf *ProfanityFilter) preserveCase(original, replacement string) string {
	if original == strings.ToUpper(original) {
		return strings.ToUpper(replacement)
	}
	if original == pf.title.String(strings.ToLower(original)) {
		return pf.title.String(replacement)
	}
	return strings.ToLower(replacement)
}
