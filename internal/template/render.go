// Package template implements the {{placeholder}} substitution used by every
// user-configurable release note template. Substitution is permissive: keys
// that are not present in the context leave their placeholder untouched, so a
// typo in a config file shows up in the output instead of failing the run.
package template

import (
	"cmp"
	"slices"
	"strings"
)

// Render replaces every literal {{key}} in tpl whose key exists in ctx.
// The template is scanned once, so values that themselves contain
// {{...}} sequences are inserted literally and never expanded. When two
// placeholders start at the same position the longer key wins.
func Render(ctx map[string]string, tpl string) string {
	if len(ctx) == 0 || tpl == "" {
		return tpl
	}

	keys := make([]string, 0, len(ctx))
	for key := range ctx {
		keys = append(keys, key)
	}
	// strings.Replacer prefers earlier pairs on a tie.
	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, "{{"+key+"}}", ctx[key])
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}
