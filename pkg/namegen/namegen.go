package namegen

import (
	"math/rand/v2"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Word tables for band name generation, keyed by genre. "random" draws
// from the union of all genres.
var bandWords = map[string][]string{
	"rock": {
		"Electric", "Velvet", "Midnight", "Thunder", "Stone", "Rebel",
		"Wolves", "Engine", "Mirror", "Avenue", "Static", "Crown",
	},
	"country": {
		"Whiskey", "Dusty", "Prairie", "Wagon", "Creek", "Boots",
		"Sundown", "Holler", "Bluebonnet", "Rambler", "Porch", "Mule",
	},
	"metal": {
		"Iron", "Crimson", "Obsidian", "Serpent", "Grave", "Inferno",
		"Ashes", "Reaper", "Citadel", "Venom", "Eclipse", "Warhammer",
	},
	"indie": {
		"Paper", "Foxglove", "Attic", "Postcard", "Sparrow", "Harbor",
		"Lantern", "Wildflower", "Cassette", "Orchard", "Satellite", "Fern",
	},
	"punk": {
		"Riot", "Broken", "Gutter", "Spit", "Wasted", "Siren",
		"Rats", "Anthem", "Bruise", "Scrap", "Filth", "Bombs",
	},
	"jam": {
		"Cosmic", "Groove", "Peacock", "Sunshine", "Turtle", "Melon",
		"Drifting", "Kaleidoscope", "Honey", "Ramble", "Prism", "Garden",
	},
	"electronic": {
		"Neon", "Pulse", "Circuit", "Analog", "Glitch", "Vapor",
		"Hologram", "Midnight", "Synth", "Phase", "Arcade", "Signal",
	},
}

// Rapper prefixes by gender. Non-binary draws from the shared pool only.
var rapperPrefixes = map[string][]string{
	"male":       {"Lil", "Big", "Young", "King", "Sir", "Ol'"},
	"female":     {"Lil", "Queen", "Lady", "Young", "Mama", "Miss"},
	"non-binary": {"Lil", "Young", "MC", "DJ", "Big", "Saint"},
}

// Rapper flavor words by style.
var rapperWords = map[string][]string{
	"old school": {"Flash", "Rock", "Fresh", "Hype", "Scratch", "Breaks"},
	"trap":       {"Drip", "Glacier", "Bandz", "Flex", "Slime", "Racks"},
	"grime":      {"Shadow", "Pressure", "Skeng", "Frost", "Static", "Brick"},
	"conscious":  {"Truth", "Roots", "Vision", "Scribe", "Soul", "Prophet"},
}

// Generator produces random name combinations from the word tables.
// It is safe to share across requests only when the underlying source is;
// the default source from New is not, so the handlers construct one
// generator per request.
type Generator struct {
	rand  *rand.Rand
	title cases.Caser
}

// New creates a generator with a randomly seeded source.
func New() *Generator {
	return NewWithSeed(rand.Uint64(), rand.Uint64())
}

// NewWithSeed creates a deterministic generator, used by tests.
func NewWithSeed(seed1, seed2 uint64) *Generator {
	return &Generator{
		rand:  rand.New(rand.NewPCG(seed1, seed2)),
		title: cases.Title(language.English),
	}
}

// BandOptions configures one band name generation.
type BandOptions struct {
	Input    string // the reader's name or word; always appears in the result
	Genre    string // one of the bandWords keys, or "random"
	Words    int    // total word count, clamped to 2-4
	FirstThe bool   // prepend "The"
	AndThe   bool   // insert "& The" after the first word
}

// BandName builds a band name around the reader's input word. The input
// always lands in the final position; preceding slots are drawn from the
// genre table without repeats.
func (g *Generator) BandName(opts BandOptions) string {
	count := clamp(opts.Words, 2, 4)
	pool := g.bandPool(opts.Genre)

	words := make([]string, 0, count+2)
	words = append(words, g.pick(pool, count-1)...)
	words = append(words, g.title.String(strings.ToLower(opts.Input)))

	if opts.AndThe && len(words) >= 2 {
		rest := append([]string{"&", "The"}, words[1:]...)
		words = append(words[:1], rest...)
	}
	if opts.FirstThe {
		words = append([]string{"The"}, words...)
	}

	return strings.Join(words, " ")
}

// RapperOptions configures one rapper name generation.
type RapperOptions struct {
	Input  string // the reader's name; always appears in the result
	Gender string // prefix pool key; unknown values use "non-binary"
	Style  string // flavor word pool key, or "random"
	Words  int    // total word count, clamped to 2-3
}

// RapperName builds a rapper name: a gender-pool prefix, the reader's
// name, and for three-word names a style flavor word.
func (g *Generator) RapperName(opts RapperOptions) string {
	count := clamp(opts.Words, 2, 3)

	prefixes, ok := rapperPrefixes[opts.Gender]
	if !ok {
		prefixes = rapperPrefixes["non-binary"]
	}

	words := []string{
		prefixes[g.rand.IntN(len(prefixes))],
		g.title.String(strings.ToLower(opts.Input)),
	}
	if count == 3 {
		pool := g.rapperPool(opts.Style)
		words = append(words, pool[g.rand.IntN(len(pool))])
	}

	return strings.Join(words, " ")
}

// bandPool returns the word table for a genre; unknown genres and "random"
// get the union of every genre.
func (g *Generator) bandPool(genre string) []string {
	if words, ok := bandWords[strings.ToLower(genre)]; ok {
		return words
	}
	var all []string
	for _, words := range bandWords {
		all = append(all, words...)
	}
	return all
}

func (g *Generator) rapperPool(style string) []string {
	if words, ok := rapperWords[strings.ToLower(style)]; ok {
		return words
	}
	var all []string
	for _, words := range rapperWords {
		all = append(all, words...)
	}
	return all
}

// pick draws n distinct words from pool. n never exceeds the pool size in
// practice (pools hold at least 6 words, n is at most 3).
func (g *Generator) pick(pool []string, n int) []string {
	if n <= 0 {
		return nil
	}
	perm := g.rand.Perm(len(pool))
	if n > len(pool) {
		n = len(pool)
	}
	words := make([]string, n)
	for i := 0; i < n; i++ {
		words[i] = pool[perm[i]]
	}
	return words
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
