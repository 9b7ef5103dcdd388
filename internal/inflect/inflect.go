// Package inflect derives the lexical variants of a user-supplied name.
//
// Every generator template needs the same name in several shapes (the
// singular snake_case form for a file name, the plural form for a table
// name, PascalCase for a type). All variants are derived from one
// canonical token sequence, so resolving the same raw name always yields
// the same Identifier.
package inflect

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Variant names one lexical rendering of an identifier.
type Variant string

const (
	Singular     Variant = "singular"      // blog_post
	Plural       Variant = "plural"        // blog_posts
	Camel        Variant = "camel"         // blogPost
	CamelPlural  Variant = "camel_plural"  // blogPosts
	Pascal       Variant = "pascal"        // BlogPost
	PascalPlural Variant = "pascal_plural" // BlogPosts
	Kebab        Variant = "kebab"         // blog-post
	KebabPlural  Variant = "kebab_plural"  // blog-posts
	Scream       Variant = "scream"        // BLOG_POST
	Human        Variant = "human"         // Blog post
)

// ErrInvalidIdentifier is returned when a raw name is empty or contains
// characters outside letters, digits, underscore and hyphen.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// Identifier is a raw name plus all of its derived variants.
type Identifier struct {
	Raw      string
	variants map[Variant]string
}

// Resolve normalizes raw into canonical tokens and derives every variant.
// The plural is always derived from the singular form, so "posts" and
// "post" resolve to identical variant sets.
func Resolve(raw string) (Identifier, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Identifier{}, fmt.Errorf("%w: name is empty", ErrInvalidIdentifier)
	}
	for _, r := range trimmed {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return Identifier{}, fmt.Errorf("%w: %q contains %q", ErrInvalidIdentifier, raw, r)
		}
	}

	tokens := Tokenize(trimmed)
	if len(tokens) == 0 {
		return Identifier{}, fmt.Errorf("%w: %q has no word characters", ErrInvalidIdentifier, raw)
	}

	// Canonical form is singular; inflect only the last token.
	singular := append([]string(nil), tokens...)
	singular[len(singular)-1] = Singularize(singular[len(singular)-1])
	plural := append([]string(nil), singular...)
	plural[len(plural)-1] = Pluralize(plural[len(plural)-1])

	id := Identifier{Raw: raw, variants: map[Variant]string{
		Singular:     strings.Join(singular, "_"),
		Plural:       strings.Join(plural, "_"),
		Camel:        camelJoin(singular),
		CamelPlural:  camelJoin(plural),
		Pascal:       pascalJoin(singular),
		PascalPlural: pascalJoin(plural),
		Kebab:        strings.Join(singular, "-"),
		KebabPlural:  strings.Join(plural, "-"),
		Scream:       strings.ToUpper(strings.Join(singular, "_")),
		Human:        humanJoin(singular),
	}}
	return id, nil
}

// Get returns the rendered form for a variant, or "" if unknown.
func (id Identifier) Get(v Variant) string {
	return id.variants[v]
}

// Variants returns a copy of the full variant map.
func (id Identifier) Variants() map[Variant]string {
	out := make(map[Variant]string, len(id.variants))
	for k, v := range id.variants {
		out[k] = v
	}
	return out
}

// Tokenize splits a name into lowercase tokens on underscore, hyphen and
// camelCase boundaries. Acronym runs stay together: "HTTPServer" becomes
// ["http", "server"].
func Tokenize(s string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r):
			if i > 0 {
				prev := runes[i-1]
				next := rune(0)
				if i+1 < len(runes) {
					next = runes[i+1]
				}
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					flush()
				} else if unicode.IsUpper(prev) && unicode.IsLower(next) {
					flush()
				}
			}
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// irregulars maps singular to plural for nouns that don't follow suffix
// rules. Both directions are derived from this one table.
var irregulars = map[string]string{
	"person": "people",
	"child":  "children",
	"man":    "men",
	"woman":  "women",
	"tooth":  "teeth",
	"foot":   "feet",
	"mouse":  "mice",
	"goose":  "geese",
	"bus":    "buses",
	"wife":   "wives",
	"knife":  "knives",
	"life":   "lives",
	"leaf":   "leaves",
}

var irregularSingulars = func() map[string]string {
	m := make(map[string]string, len(irregulars))
	for s, p := range irregulars {
		m[p] = s
	}
	return m
}()

// uncountables are identical in singular and plural form.
var uncountables = map[string]bool{
	"data":     true,
	"media":    true,
	"news":     true,
	"series":   true,
	"species":  true,
	"status":   true,
	"metadata": true,
	"info":     true,
}

// Pluralize converts a singular noun to its plural form. Already-plural
// words pass through unchanged.
func Pluralize(word string) string {
	if word == "" || uncountables[word] {
		return word
	}
	if _, ok := irregularSingulars[word]; ok {
		return word
	}
	if plural, ok := irregulars[word]; ok {
		return plural
	}
	if IsPlural(word) {
		return word
	}

	switch {
	case strings.HasSuffix(word, "s"),
		strings.HasSuffix(word, "x"),
		strings.HasSuffix(word, "z"),
		strings.HasSuffix(word, "ch"),
		strings.HasSuffix(word, "sh"):
		return word + "es"
	case strings.HasSuffix(word, "y") && len(word) > 1 && !isVowel(word[len(word)-2]):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(word, "fe"):
		return word[:len(word)-2] + "ves"
	case strings.HasSuffix(word, "f"):
		return word[:len(word)-1] + "ves"
	default:
		return word + "s"
	}
}

// Singularize converts a plural noun to its singular form. Already-singular
// words pass through unchanged.
func Singularize(word string) string {
	if word == "" || uncountables[word] {
		return word
	}
	if singular, ok := irregularSingulars[word]; ok {
		return singular
	}
	if _, ok := irregulars[word]; ok {
		return word
	}

	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 3:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ves") && len(word) > 3:
		return word[:len(word)-3] + "f"
	case strings.HasSuffix(word, "xes"),
		strings.HasSuffix(word, "zes"),
		strings.HasSuffix(word, "ches"),
		strings.HasSuffix(word, "shes"),
		strings.HasSuffix(word, "sses"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && len(word) > 1:
		return word[:len(word)-1]
	default:
		return word
	}
}

// IsPlural reports whether singularizing the word would change it.
func IsPlural(word string) bool {
	if uncountables[word] {
		return false
	}
	if _, ok := irregularSingulars[word]; ok {
		return true
	}
	return Singularize(word) != word
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// capitalize uppercases the first letter, expanding common acronyms.
func capitalize(token string) string {
	if token == "" {
		return ""
	}
	if acronym, ok := acronyms[token]; ok {
		return acronym
	}
	return strings.ToUpper(token[:1]) + token[1:]
}

// acronyms render fully uppercased in Pascal and camel positions.
var acronyms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"uri":  "URI",
	"api":  "API",
	"uuid": "UUID",
	"http": "HTTP",
	"sql":  "SQL",
	"json": "JSON",
	"xml":  "XML",
	"html": "HTML",
	"db":   "DB",
	"ui":   "UI",
}

// PascalCase re-joins the token split of s as PascalCase, without
// changing plurality: "blog_posts" → "BlogPosts".
func PascalCase(s string) string {
	return pascalJoin(Tokenize(s))
}

// CamelCase re-joins the token split of s as camelCase.
func CamelCase(s string) string {
	return camelJoin(Tokenize(s))
}

// SnakeCase re-joins the token split of s as snake_case.
func SnakeCase(s string) string {
	return strings.Join(Tokenize(s), "_")
}

// KebabCase re-joins the token split of s as kebab-case.
func KebabCase(s string) string {
	return strings.Join(Tokenize(s), "-")
}

func pascalJoin(tokens []string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(capitalize(t))
	}
	return b.String()
}

func camelJoin(tokens []string) string {
	var b strings.Builder
	for i, t := range tokens {
		if i == 0 {
			b.WriteString(t)
		} else {
			b.WriteString(capitalize(t))
		}
	}
	return b.String()
}

func humanJoin(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	joined := strings.Join(tokens, " ")
	return strings.ToUpper(joined[:1]) + joined[1:]
}
