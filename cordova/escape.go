package cordova

import "strings"

var (
	encoder = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	decoder = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	)
)

// Encode escapes the XML special characters of s. Plugin variable values are
// stored encoded.
func Encode(s string) string {
	return encoder.Replace(s)
}

// Decode reverses Encode.
func Decode(s string) string {
	return decoder.Replace(s)
}
