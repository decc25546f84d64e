package tutor

import (
	"regexp"
	"strings"
)

var (
	fracPattern = regexp.MustCompile(`\\frac\{([^{}]+)\}\{([^{}]+)\}`)

	notation = strings.NewReplacer(
		`\(`, "",
		`\)`, "",
		`\[`, "",
		`\]`, "",
		`^2`, "²",
		`^3`, "³",
		`\sqrt`, "√",
		`\times`, "×",
		`\cdot`, "·",
		`\div`, "÷",
		`\pi`, "π",
	)
)

// Tidy trims a model reply and rewrites LaTeX-style math into plain
// Unicode that renders in a chat bubble.
func Tidy(s string) string {
	s = fracPattern.ReplaceAllString(s, "$1/$2")
	return strings.TrimSpace(notation.Replace(s))
}
