// Package translate maps between internal morphological codes and
// localized (Russian) display labels. The tables are static lookup
// data used only at presentation and filter-input boundaries.
package translate

import "strings"

// morphLabels maps feature name -> internal code -> display label.
var morphLabels = map[string]map[string]string{
	"Case": {
		"Nom": "Именительный падеж",
		"Gen": "Родительный падеж",
		"Dat": "Дательный падеж",
		"Acc": "Винительный падеж",
		"Ins": "Творительный падеж",
		"Loc": "Предложный падеж",
	},
	"Number": {
		"Sing": "Единственное число",
		"Plur": "Множественное число",
	},
	"Gender": {
		"Masc": "Мужской род",
		"Fem":  "Женский род",
		"Neut": "Средний род",
	},
	"Tense": {
		"Past": "Прошедшее время",
		"Pres": "Настоящее время",
		"Fut":  "Будущее время",
	},
	"Aspect": {
		"Imp":  "Несовершенный вид",
		"Perf": "Совершенный вид",
	},
	"Mood": {
		"Ind": "Изъявительное наклонение",
		"Imp": "Повелительное наклонение",
	},
	"VerbForm": {
		"Fin":  "Личная форма",
		"Inf":  "Инфинитив",
		"Part": "Причастие",
		"Ger":  "Деепричастие",
	},
	"Person": {
		"1": "1-е лицо",
		"2": "2-е лицо",
		"3": "3-е лицо",
	},
	"Animacy": {
		"Anim": "Одушевленный",
		"Inan": "Неодушевленный",
	},
	"Voice": {
		"Act":  "Действительный залог",
		"Pass": "Страдательный залог",
		"Mid":  "Средний залог",
	},
	"Degree": {
		"Pos": "Положительная степень",
		"Cmp": "Сравнительная степень",
		"Sup": "Превосходная степень",
	},
	"Polarity": {
		"Neg": "Отрицательная полярность",
	},
}

// posLabels maps internal part-of-speech codes to display labels.
var posLabels = map[string]string{
	"NOUN":  "Существительное",
	"VERB":  "Глагол",
	"ADJ":   "Прилагательное",
	"ADV":   "Наречие",
	"PRON":  "Местоимение",
	"NUM":   "Числительное",
	"ADP":   "Предлог",
	"CONJ":  "Союз",
	"PART":  "Частица",
	"INTJ":  "Междометие",
	"PUNCT": "Пунктуация",
}

// reverseMorph maps every display label back to its internal code.
var reverseMorph = func() map[string]string {
	m := make(map[string]string)
	for _, values := range morphLabels {
		for code, label := range values {
			m[label] = code
		}
	}
	return m
}()

// reversePOS maps part-of-speech display labels back to codes.
var reversePOS = func() map[string]string {
	m := make(map[string]string, len(posLabels))
	for code, label := range posLabels {
		m[label] = code
	}
	return m
}()

// MorphLabel returns the display label for a feature value.
// Unknown input is returned unchanged (fail-soft).
func MorphLabel(feature, code string) string {
	if label, ok := morphLabels[feature][code]; ok {
		return label
	}
	return code
}

// POSLabel returns the display label for a part-of-speech code.
// Unknown input is returned unchanged (fail-soft).
func POSLabel(code string) string {
	if label, ok := posLabels[code]; ok {
		return label
	}
	return code
}

// FeatureCode resolves a filter value for a feature to its internal
// code. It accepts either a display label or an internal code; the
// second return is false when the value is neither, so the query layer
// can fail closed instead of matching everything.
func FeatureCode(feature, value string) (string, bool) {
	if code, ok := reverseMorph[value]; ok {
		return code, true
	}
	if _, ok := morphLabels[feature][value]; ok {
		return value, true
	}
	return "", false
}

// POSCode resolves a part-of-speech filter value to its internal code,
// accepting either a display label or a code. The second return is
// false for unrecognized input.
func POSCode(value string) (string, bool) {
	if code, ok := reversePOS[value]; ok {
		return code, true
	}
	upper := strings.ToUpper(value)
	if _, ok := posLabels[upper]; ok {
		return upper, true
	}
	return "", false
}

// Features lists all known feature names.
func Features() []string {
	names := make([]string, 0, len(morphLabels))
	for name := range morphLabels {
		names = append(names, name)
	}
	return names
}

// FeatureValues lists the display labels for one feature.
func FeatureValues(feature string) []string {
	values := make([]string, 0, len(morphLabels[feature]))
	for _, label := range morphLabels[feature] {
		values = append(values, label)
	}
	return values
}
