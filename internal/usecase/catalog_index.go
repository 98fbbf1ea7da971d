package usecase

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/kassaklap/backend/internal/domain"
)

// Scoring constants. A containment hit is a perfect match; a
// subsequence hit ("hvolle melk" typed as "hvl melk") scores above the
// default threshold but below any near-exact edit-distance match.
const (
	scoreContains    = 1.0
	scoreSubsequence = 0.75
)

// SearchConfig holds the tuning knobs for the catalog index.
type SearchConfig struct {
	// MinSimilarity is the score in (0..1] a candidate needs to be
	// reported. The default tolerates 1-2 character typos on common
	// product words.
	MinSimilarity float64
	// MinMatchLength discards queries shorter than this many runes
	// (after normalization) to avoid noise matches.
	MinMatchLength int
	// MaxResults caps the number of matches returned; 0 means no cap.
	MaxResults int
}

const (
	defaultMinSimilarity  = 0.7
	defaultMinMatchLength = 2
)

// nameGroup is one unique product name within one establishment,
// together with every product sharing that name. Grouping at build
// time means a match can hand back the concrete products directly.
type nameGroup struct {
	code     string // establishment code, lowercased
	value    string // product name as stored in the catalog
	norm     string
	tokens   []string
	products []domain.Product
}

// Index is a fuzzy-searchable view over the product catalog. It is
// built once at startup and never mutated afterwards, so concurrent
// searches need no locking.
type Index struct {
	cfg    SearchConfig
	groups []nameGroup
	inv    map[string][]int // trigram -> group ids, ids ascending
}

// NewIndex builds an immutable fuzzy index over the catalog. Entries
// and products keep their catalog order, which is what breaks score
// ties later.
func NewIndex(entries []domain.CatalogEntry, cfg SearchConfig) *Index {
	if cfg.MinSimilarity <= 0 {
		cfg.MinSimilarity = defaultMinSimilarity
	}
	if cfg.MinMatchLength <= 0 {
		cfg.MinMatchLength = defaultMinMatchLength
	}

	idx := &Index{
		cfg: cfg,
		inv: make(map[string][]int),
	}

	for _, entry := range entries {
		code := strings.ToLower(entry.Code)
		byName := make(map[string]int)

		for _, product := range entry.Products {
			norm := normalizeText(product.Name)
			if norm == "" {
				continue
			}

			gid, ok := byName[norm]
			if !ok {
				gid = len(idx.groups)
				byName[norm] = gid
				idx.groups = append(idx.groups, nameGroup{
					code:   code,
					value:  product.Name,
					norm:   norm,
					tokens: strings.Fields(norm),
				})
				for g := range trigramSet(norm) {
					idx.inv[g] = append(idx.inv[g], gid)
				}
			}
			idx.groups[gid].products = append(idx.groups[gid].products, product)
		}
	}

	return idx
}

// Search returns the catalog matches for a raw query, best first.
// Ties keep catalog order, so repeated calls are deterministic. A
// query shorter than the minimum match length returns no matches.
func (idx *Index) Search(query string) []domain.Match {
	qNorm := normalizeText(query)
	if len([]rune(qNorm)) < idx.cfg.MinMatchLength {
		return nil
	}

	candidates := idx.candidates(qNorm)

	type scored struct {
		gid   int
		score float64
	}
	hits := make([]scored, 0, len(candidates))
	for _, gid := range candidates {
		if s := idx.score(qNorm, idx.groups[gid]); s >= idx.cfg.MinSimilarity {
			hits = append(hits, scored{gid: gid, score: s})
		}
	}

	// candidates are in catalog order; the stable sort keeps that
	// order within equal scores
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})

	if idx.cfg.MaxResults > 0 && len(hits) > idx.cfg.MaxResults {
		hits = hits[:idx.cfg.MaxResults]
	}

	matches := make([]domain.Match, 0, len(hits))
	for _, h := range hits {
		g := idx.groups[h.gid]
		matches = append(matches, domain.Match{
			EstablishmentCode: g.code,
			Value:             g.value,
			Products:          g.products,
			Score:             h.score,
		})
	}
	return matches
}

// candidates returns group ids worth scoring, in ascending (catalog)
// order. Queries long enough to carry trigrams go through the inverted
// index; shorter ones scan every group, which is fine for a static
// catalog.
func (idx *Index) candidates(qNorm string) []int {
	if len([]rune(qNorm)) < 3 {
		all := make([]int, len(idx.groups))
		for i := range all {
			all[i] = i
		}
		return all
	}

	seen := make(map[int]struct{})
	for g := range trigramSet(qNorm) {
		for _, gid := range idx.inv[g] {
			seen[gid] = struct{}{}
		}
	}

	out := make([]int, 0, len(seen))
	for gid := range seen {
		out = append(out, gid)
	}
	sort.Ints(out)
	return out
}

// score rates how well the query matches one product name. The best
// of several signals wins: containment, whole-name edit similarity,
// token-sorted similarity (word order independent), per-word
// similarity (so "melk" scores high against "halfvolle melk"), and a
// character-subsequence match.
func (idx *Index) score(qNorm string, g nameGroup) float64 {
	if strings.Contains(g.norm, qNorm) {
		return scoreContains
	}

	best := bestSimilarity(qNorm, g.norm)
	for _, token := range g.tokens {
		if s := similarity(qNorm, token); s > best {
			best = s
		}
	}

	if best < scoreSubsequence && fuzzy.Match(qNorm, g.norm) {
		best = scoreSubsequence
	}

	return best
}

// trigramSet returns the padded character trigrams of s. Padding with
// spaces makes word boundaries count, so short words still produce
// distinctive grams.
func trigramSet(s string) map[string]struct{} {
	m := make(map[string]struct{})
	if s == "" {
		return m
	}
	p := " " + s + " "
	r := []rune(p)
	if len(r) < 3 {
		m[p] = struct{}{}
		return m
	}
	for i := 0; i <= len(r)-3; i++ {
		m[string(r[i:i+3])] = struct{}{}
	}
	return m
}

// similarity is the normalized Damerau-Levenshtein similarity in [0..1].
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	d := damerauLevenshtein(a, b)
	m := len([]rune(a))
	if mb := len([]rune(b)); mb > m {
		m = mb
	}
	return 1 - float64(d)/float64(m)
}

// tokenSortSimilarity compares with words sorted alphabetically, which
// makes the score robust to word order ("melk halfvolle").
func tokenSortSimilarity(a, b string) float64 {
	return similarity(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	f := strings.Fields(s)
	sort.Strings(f)
	return strings.Join(f, " ")
}

func bestSimilarity(a, b string) float64 {
	x := similarity(a, b)
	if y := tokenSortSimilarity(a, b); y > x {
		return y
	}
	return x
}

// damerauLevenshtein is the edit distance with adjacent transpositions,
// so a swapped pair of letters counts as one edit.
func damerauLevenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	al, bl := len(ra), len(rb)

	dp := make([][]int, al+1)
	for i := 0; i <= al; i++ {
		dp[i] = make([]int, bl+1)
	}
	for i := 0; i <= al; i++ {
		dp[i][0] = i
	}
	for j := 0; j <= bl; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= al; i++ {
		for j := 1; j <= bl; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			dp[i][j] = min3(dp[i-1][j]+1, dp[i][j-1]+1, dp[i-1][j-1]+cost)

			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if v := dp[i-2][j-2] + 1; v < dp[i][j] {
					dp[i][j] = v
				}
			}
		}
	}
	return dp[al][bl]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
