package commands

import (
	"fmt"
	"strings"
)

var nouns = map[string]bool{
	"plugin":     true,
	"preference": true,
	"platform":   true,
	"engine":     true,
}

var verbs = map[string]bool{
	"add":     true,
	"remove":  true,
	"rm":      true,
	"list":    true,
	"enable":  true,
	"disable": true,
	"unset":   true,
}

// SuggestNounFirst returns the supported form of a verb-first invocation
// such as "add plugin x", or "" when args do not look like one.
func SuggestNounFirst(args []string) string {
	var words []string
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			words = append(words, a)
		}
	}
	if len(words) < 2 {
		return ""
	}

	verb, noun := strings.ToLower(words[0]), strings.ToLower(words[1])
	noun = strings.TrimSuffix(noun, "s")
	if !verbs[verb] || !nouns[noun] {
		return ""
	}
	return strings.Join(append([]string{"gocordova", noun, verb}, words[2:]...), " ")
}

// VerbFirstError wraps err with a hint when args use the verb-first form.
func VerbFirstError(args []string, err error) error {
	if suggestion := SuggestNounFirst(args); suggestion != "" {
		return fmt.Errorf("the verb-first form is not supported. Try: %s", suggestion)
	}
	return err
}
