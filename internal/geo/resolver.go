package geo

import (
	"math/rand"
	"regexp"
	"sort"
	"strings"

	"github.com/clemence/poliscope/internal/domain"
)

// cityChunkSize bounds the number of alternatives per compiled city pattern;
// the villes tier is far too large for a single alternation.
const cityChunkSize = 512

var (
	franceRegex = regexp.MustCompile(`\bfrance\b`)
	// The French city of Laval has a well-known Québécois homonym; any
	// mention of Canada in the same string disqualifies the match.
	canadaRegex = regexp.MustCompile(`\b(?:canada|quebec|qc)\b`)
)

// Resolver matches normalized location strings against the gazetteer tiers.
// It is safe for concurrent use; the caller supplies the random source used
// to break ties between equally plausible candidates, keeping runs
// reproducible under an explicit seed.
type Resolver struct {
	departements *tierMatcher
	villes       *tierMatcher
	regions      *tierMatcher
}

// NewResolver compiles the gazetteer into matchers. Compilation cost is paid
// once; the resolver itself holds no mutable state.
func NewResolver(g Gazetteer) *Resolver {
	return &Resolver{
		departements: newTierMatcher(g.Departements, false),
		villes:       newTierMatcher(g.Villes, true),
		regions:      newTierMatcher(g.Regions, false),
	}
}

// Resolve produces at most one département, one city, one région, and the
// France flag for the given raw location text. Unmatched tiers stay empty;
// an empty Location is a legitimate outcome, never an error.
func (r *Resolver) Resolve(raw string, rng *rand.Rand) domain.Location {
	normalized := Normalize(raw)
	if normalized == "" {
		return domain.Location{}
	}

	loc := domain.Location{
		France:      franceRegex.MatchString(normalized),
		Departement: pick(r.departements.match(normalized), rng),
		Ville:       pick(r.villes.match(normalized), rng),
		Region:      pick(r.regions.match(normalized), rng),
	}

	if loc.Ville == "laval" && canadaRegex.MatchString(normalized) {
		loc.Ville = ""
	}

	return loc
}

// pick chooses uniformly at random when several candidates matched.
func pick(candidates []string, rng *rand.Rand) string {
	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return candidates[0]
	default:
		return candidates[rng.Intn(len(candidates))]
	}
}

// tierMatcher holds the compiled patterns of one gazetteer tier. Entries
// must already be normalized and sorted longest-first (see NewGazetteer) so
// that Go's leftmost-first alternation semantics prefer the longer name.
type tierMatcher struct {
	patterns []*regexp.Regexp
}

func newTierMatcher(entries []string, directional bool) *tierMatcher {
	if len(entries) == 0 {
		return &tierMatcher{}
	}

	var patterns []*regexp.Regexp
	if directional {
		// Whole / prefix / suffix / infix variants, each chunked; a single
		// alternation over every city would be unmanageable.
		for _, chunk := range chunked(entries, cityChunkSize) {
			alt := alternation(chunk)
			patterns = append(patterns,
				regexp.MustCompile(`^(?:`+alt+`)$`),
				regexp.MustCompile(`^(?:`+alt+`)\b`),
				regexp.MustCompile(`\b(?:`+alt+`)$`),
				regexp.MustCompile(`\b(?:`+alt+`)\b`),
			)
		}
	} else {
		for _, chunk := range chunked(entries, cityChunkSize) {
			patterns = append(patterns, regexp.MustCompile(`\b(?:`+alternation(chunk)+`)\b`))
		}
	}
	return &tierMatcher{patterns: patterns}
}

// match returns the unique maximal candidates found in the normalized
// string: a candidate contained word-for-word inside another matched
// candidate is dropped, so "france" never wins over "ile de france".
func (t *tierMatcher) match(normalized string) []string {
	if len(t.patterns) == 0 {
		return nil
	}

	seen := make(map[string]struct{})
	var found []string
	for _, pattern := range t.patterns {
		for _, m := range pattern.FindAllString(normalized, -1) {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			found = append(found, m)
		}
	}
	if len(found) < 2 {
		return found
	}

	sort.Slice(found, func(i, j int) bool { return len(found[i]) > len(found[j]) })
	var maximal []string
	for _, candidate := range found {
		shadowed := false
		for _, longer := range maximal {
			if containsWord(longer, candidate) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			maximal = append(maximal, candidate)
		}
	}
	sort.Strings(maximal) // deterministic order before the random tie-break
	return maximal
}

func alternation(entries []string) string {
	quoted := make([]string, len(entries))
	for i, entry := range entries {
		quoted[i] = regexp.QuoteMeta(entry)
	}
	return strings.Join(quoted, "|")
}

func chunked(entries []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(entries); start += size {
		end := start + size
		if end > len(entries) {
			end = len(entries)
		}
		chunks = append(chunks, entries[start:end])
	}
	return chunks
}

// containsWord reports whether needle appears in haystack on word
// boundaries. Both strings are already normalized to lowercase ASCII words
// separated by single spaces.
func containsWord(haystack, needle string) bool {
	idx := 0
	for {
		pos := strings.Index(haystack[idx:], needle)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(needle)
		leftOK := start == 0 || haystack[start-1] == ' '
		rightOK := end == len(haystack) || haystack[end] == ' '
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
}
