// Package vehiclenlp detects make and model mentions in free-form query
// text. It backs the make/model fallback used when a query carries no
// plate, VIN, or fleet code.
package vehiclenlp

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mention is one extracted make/model reference.
type Mention struct {
	Make       string  // canonical make, e.g. "Mercedes-Benz"
	Model      string  // canonical model, empty if only the make was found
	Year       int     // model year, 0 if not found
	Confidence float64 // 0.0-1.0
	Span       string  // the matched text fragment
}

// makeAliases maps lowercase abbreviations and nicknames to canonical makes.
// Covers the makes that actually show up in commercial fleets.
var makeAliases = map[string]string{
	"volvo":         "Volvo",
	"ford":          "Ford",
	"toyota":        "Toyota",
	"mercedes":      "Mercedes-Benz",
	"mercedes-benz": "Mercedes-Benz",
	"benz":          "Mercedes-Benz",
	"merc":          "Mercedes-Benz",
	"man":           "MAN",
	"scania":        "Scania",
	"daf":           "DAF",
	"iveco":         "Iveco",
	"isuzu":         "Isuzu",
	"renault":       "Renault",
	"nissan":        "Nissan",
	"hyundai":       "Hyundai",
	"fiat":          "Fiat",
	"peugeot":       "Peugeot",
	"citroen":       "Citroen",
	"mitsubishi":    "Mitsubishi",
	"vw":            "Volkswagen",
	"volkswagen":    "Volkswagen",
}

// hebrewAliases maps Hebrew make spellings to canonical makes. These are
// scanned separately because ASCII word boundaries do not apply to Hebrew.
var hebrewAliases = map[string]string{
	"וולוו":     "Volvo",
	"פורד":      "Ford",
	"טויוטה":    "Toyota",
	"מרצדס":     "Mercedes-Benz",
	"סקניה":     "Scania",
	"איווקו":    "Iveco",
	"רנו":       "Renault",
	"ניסאן":     "Nissan",
	"יונדאי":    "Hyundai",
	"פיאט":      "Fiat",
	"פולקסווגן": "Volkswagen",
}

// makeModels lists the known models per canonical make, trucks and vans first.
var makeModels = map[string][]string{
	"Volvo":         {"FH16", "FH", "FMX", "FM", "FE", "FL", "V90", "V60", "XC90", "XC60"},
	"Ford":          {"Transit Custom", "Transit Connect", "Transit", "Ranger", "F-150", "F-350", "Focus"},
	"Toyota":        {"Land Cruiser", "Hilux", "Proace", "Dyna", "Corolla", "Camry"},
	"Mercedes-Benz": {"Sprinter", "Vito", "Citan", "Actros", "Atego", "Arocs"},
	"MAN":           {"TGX", "TGS", "TGM", "TGL", "TGE"},
	"Scania":        {"R450", "R500", "S500", "P280", "G410"},
	"DAF":           {"XF", "CF", "LF"},
	"Iveco":         {"Daily", "Eurocargo", "Stralis", "S-Way"},
	"Isuzu":         {"D-Max", "NPR", "NQR"},
	"Renault":       {"Master", "Trafic", "Kangoo", "Clio", "Megane"},
	"Nissan":        {"Navara", "Cabstar", "NV200", "NV400"},
	"Hyundai":       {"H350", "Porter", "i20"},
	"Fiat":          {"Ducato", "Doblo", "Fiorino"},
	"Peugeot":       {"Boxer", "Expert", "Partner"},
	"Citroen":       {"Jumper", "Jumpy", "Berlingo"},
	"Mitsubishi":    {"Canter", "L200", "Outlander"},
	"Volkswagen":    {"Crafter", "Transporter", "Caddy", "Amarok"},
}

// standaloneModels holds models distinctive enough to imply their make with
// no make word nearby. Built at init from makeModels, minus short names like
// "XF" or "FM" that collide with ordinary text too easily.
var standaloneModels map[string]string // lowercase model -> canonical make

// modelsByMake maps lowercase make -> models sorted longest first, so
// "Transit Custom" wins over "Transit".
var modelsByMake map[string][]string

// canonicalModel maps lowercase model -> canonical spelling.
var canonicalModel map[string]string

var makeRe *regexp.Regexp

var (
	yearFullRe = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	yearAbbrRe = regexp.MustCompile(`'(\d{2})\b`)
)

func init() {
	standaloneModels = make(map[string]string)
	modelsByMake = make(map[string][]string)
	canonicalModel = make(map[string]string)

	owners := make(map[string]int)
	for mk, models := range makeModels {
		lower := make([]string, len(models))
		for i, m := range models {
			ml := strings.ToLower(m)
			lower[i] = ml
			canonicalModel[ml] = m
			owners[ml]++
		}
		sort.Slice(lower, func(i, j int) bool { return len(lower[i]) > len(lower[j]) })
		modelsByMake[strings.ToLower(mk)] = lower
	}
	for mk, models := range makeModels {
		for _, m := range models {
			ml := strings.ToLower(m)
			if owners[ml] == 1 && len(ml) >= 4 {
				standaloneModels[ml] = mk
			}
		}
	}

	aliases := make([]string, 0, len(makeAliases))
	for a := range makeAliases {
		aliases = append(aliases, regexp.QuoteMeta(a))
	}
	sort.Slice(aliases, func(i, j int) bool { return len(aliases[i]) > len(aliases[j]) })
	makeRe = regexp.MustCompile(`(?i)\b(` + strings.Join(aliases, "|") + `)\b`)
}

// Extract returns all make/model mentions in text, highest confidence first.
func Extract(text string) []Mention {
	if text == "" {
		return nil
	}
	seen := make(map[string]bool)
	var mentions []Mention

	for _, hit := range findMakes(text) {
		canonical := hit.make_

		// Model, if any, follows the make within a short window.
		after := text[hit.end:min(hit.end+40, len(text))]
		model, modelEnd := findModel(canonical, after)

		// Year may sit just before the make or after the model.
		before := text[max(0, hit.start-12):hit.start]
		year := findYear(before)
		if year == 0 {
			year = findYear(after[modelEnd:])
		}
		if year == 0 {
			year = findAbbrYear(before)
		}

		conf := 0.60
		switch {
		case model != "" && year > 0:
			conf = 0.95
		case model != "":
			conf = 0.80
		case year > 0:
			conf = 0.70
		}

		spanEnd := hit.end
		if model != "" {
			spanEnd = hit.end + modelEnd
		}
		key := fmt.Sprintf("%s|%s|%d", canonical, model, year)
		if seen[key] {
			continue
		}
		seen[key] = true
		mentions = append(mentions, Mention{
			Make:       canonical,
			Model:      model,
			Year:       year,
			Confidence: conf,
			Span:       strings.TrimSpace(text[hit.start:spanEnd]),
		})
	}

	mentions = append(mentions, findStandalone(text, seen)...)

	sort.SliceStable(mentions, func(i, j int) bool {
		return mentions[i].Confidence > mentions[j].Confidence
	})
	return mentions
}

// ExtractBest returns the single highest-confidence mention, or nil.
func ExtractBest(text string) *Mention {
	mentions := Extract(text)
	if len(mentions) == 0 {
		return nil
	}
	return &mentions[0]
}

type makeHit struct {
	make_      string
	start, end int
}

// findMakes locates every make mention, Latin aliases by regexp and Hebrew
// aliases by substring scan with rune boundary checks.
func findMakes(text string) []makeHit {
	var hits []makeHit
	for _, loc := range makeRe.FindAllStringSubmatchIndex(text, -1) {
		alias := strings.ToLower(text[loc[2]:loc[3]])
		if mk, ok := makeAliases[alias]; ok {
			hits = append(hits, makeHit{make_: mk, start: loc[2], end: loc[3]})
		}
	}
	for alias, mk := range hebrewAliases {
		from := 0
		for {
			i := strings.Index(text[from:], alias)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(alias)
			if hebrewMakeBounded(text, start, end) {
				hits = append(hits, makeHit{make_: mk, start: start, end: end})
			}
			from = end
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })
	return hits
}

// hebrewMakeBounded is like hebrewWordBounded but tolerates one attached
// single-letter prefix before the make, so "הוולוו" still mentions Volvo.
func hebrewMakeBounded(text string, start, end int) bool {
	if hebrewWordBounded(text, start, end) {
		return true
	}
	r, size := utf8.DecodeLastRuneInString(text[:start])
	if !strings.ContainsRune("הולבמכש", r) {
		return false
	}
	return hebrewWordBounded(text, start-size, end)
}

func hebrewWordBounded(text string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(text) {
		r, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// findModel matches a known model of the make at the start of the fragment
// after the make word. Returns the canonical model and the byte offset just
// past it in the fragment.
func findModel(mk, after string) (string, int) {
	models := modelsByMake[strings.ToLower(mk)]
	trimmed := strings.TrimLeft(after, " \t,.")
	offset := len(after) - len(trimmed)
	lower := strings.ToLower(trimmed)

	for _, ml := range models {
		if !strings.HasPrefix(lower, ml) {
			continue
		}
		if end := len(ml); end < len(lower) {
			next := rune(lower[end])
			if unicode.IsLetter(next) || unicode.IsDigit(next) {
				continue
			}
		}
		return canonicalModel[ml], offset + len(ml)
	}
	return "", 0
}

// findStandalone picks up distinctive models used without their make, like
// "the Sprinter at the Haifa depot".
func findStandalone(text string, seen map[string]bool) []Mention {
	lower := strings.ToLower(text)

	type hit struct {
		mention Mention
		pos     int
	}
	var hits []hit
	for ml, mk := range standaloneModels {
		idx := strings.Index(lower, ml)
		if idx < 0 || !hebrewWordBounded(lower, idx, idx+len(ml)) {
			continue
		}
		model := canonicalModel[ml]

		near := text[max(0, idx-12):min(idx+len(ml)+12, len(text))]
		year := findYear(near)

		conf := 0.50
		if year > 0 {
			conf = 0.75
		}
		key := fmt.Sprintf("%s|%s|%d", mk, model, year)
		if seen[key] || seen[fmt.Sprintf("%s|%s|%d", mk, model, 0)] {
			continue
		}
		seen[key] = true
		hits = append(hits, hit{pos: idx, mention: Mention{
			Make:       mk,
			Model:      model,
			Year:       year,
			Confidence: conf,
			Span:       strings.TrimSpace(near),
		}})
	}
	// Map iteration order is random; pin mention order to text position.
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	mentions := make([]Mention, len(hits))
	for i, h := range hits {
		mentions[i] = h.mention
	}
	return mentions
}

func findYear(s string) int {
	m := yearFullRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	y, _ := strconv.Atoi(m[1])
	if y >= 1990 && y <= 2035 {
		return y
	}
	return 0
}

func findAbbrYear(s string) int {
	m := yearAbbrRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	yy, _ := strconv.Atoi(m[1])
	if yy <= 35 {
		return 2000 + yy
	}
	if yy >= 90 {
		return 1900 + yy
	}
	return 0
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
