package mystem

import "strings"

// posTags maps mystem part-of-speech tags to the internal code set.
var posTags = map[string]string{
	"S":      "NOUN",
	"V":      "VERB",
	"A":      "ADJ",
	"ADV":    "ADV",
	"ADVPRO": "ADV",
	"ANUM":   "ADJ",
	"APRO":   "PRON",
	"COM":    "NOUN",
	"CONJ":   "CONJ",
	"INTJ":   "INTJ",
	"NUM":    "NUM",
	"PART":   "PART",
	"PR":     "ADP",
	"SPRO":   "PRON",
}

// grammeme is one feature name/value pair.
type grammeme struct {
	name  string
	value string
}

// grammemes maps mystem grammeme tags to internal feature codes.
// Tags without an entry (rare cases, stylistic markers) are dropped.
var grammemes = map[string]grammeme{
	"им":   {"Case", "Nom"},
	"род":  {"Case", "Gen"},
	"дат":  {"Case", "Dat"},
	"вин":  {"Case", "Acc"},
	"твор": {"Case", "Ins"},
	"пр":   {"Case", "Loc"},

	"ед": {"Number", "Sing"},
	"мн": {"Number", "Plur"},

	"муж":  {"Gender", "Masc"},
	"жен":  {"Gender", "Fem"},
	"сред": {"Gender", "Neut"},

	"прош":   {"Tense", "Past"},
	"наст":   {"Tense", "Pres"},
	"непрош": {"Tense", "Fut"},

	"несов": {"Aspect", "Imp"},
	"сов":   {"Aspect", "Perf"},

	"изъяв": {"Mood", "Ind"},
	"пов":   {"Mood", "Imp"},

	"инф":   {"VerbForm", "Inf"},
	"прич":  {"VerbForm", "Part"},
	"деепр": {"VerbForm", "Ger"},

	"1-л": {"Person", "1"},
	"2-л": {"Person", "2"},
	"3-л": {"Person", "3"},

	"од":   {"Animacy", "Anim"},
	"неод": {"Animacy", "Inan"},

	"действ": {"Voice", "Act"},
	"страд":  {"Voice", "Pass"},

	"срав": {"Degree", "Cmp"},
	"прев": {"Degree", "Sup"},
}

// parseGr decodes a mystem gr string, e.g. "S,муж,од=им,ед". The part
// before "=" describes the lexeme, the part after the form; the first
// tag is the part of speech. Ambiguous form variants like
// "(вин,ед|им,ед)" resolve to the first variant.
func parseGr(gr string) (string, map[string]string) {
	if gr == "" {
		return "NOUN", nil
	}

	gr = strings.NewReplacer("(", "", ")", "").Replace(gr)
	if i := strings.IndexByte(gr, '|'); i >= 0 {
		gr = gr[:i]
	}
	gr = strings.ReplaceAll(gr, "=", ",")

	tags := strings.Split(gr, ",")
	pos, ok := posTags[tags[0]]
	if !ok {
		pos = "NOUN"
	}

	var feats map[string]string
	for _, tag := range tags[1:] {
		g, ok := grammemes[strings.TrimSpace(tag)]
		if !ok {
			continue
		}
		if feats == nil {
			feats = make(map[string]string)
		}
		// First occurrence of a category wins.
		if _, dup := feats[g.name]; !dup {
			feats[g.name] = g.value
		}
	}
	return pos, feats
}
