// Package hook implements the hook engine: interpolation, prefix-based
// batching, subprocess execution, and the filter: JSON-pipe contract.
package hook

import (
	"strings"

	"github.com/driftship/driftship/internal/pipeline"
)

// Interpolate replaces every occurrence of {name} in cmd, where name is one
// of the six known hook-context variables, with the corresponding value from
// vars. Unknown {name} tokens are left verbatim. Interpolation is purely
// textual; it performs no shell-quoting, so commands must quote themselves.
func Interpolate(cmd string, vars pipeline.HookContext) string {
	m := vars.AsMap()
	var b strings.Builder
	b.Grow(len(cmd))
	for i := 0; i < len(cmd); {
		if cmd[i] != '{' {
			b.WriteByte(cmd[i])
			i++
			continue
		}
		end := strings.IndexByte(cmd[i+1:], '}')
		if end < 0 {
			b.WriteString(cmd[i:])
			break
		}
		name := cmd[i+1 : i+1+end]
		if val, ok := m[name]; ok {
			b.WriteString(val)
		} else {
			b.WriteString(cmd[i : i+1+end+1])
		}
		i += end + 2
	}
	return b.String()
}
