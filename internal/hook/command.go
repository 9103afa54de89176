package hook

import "strings"

// Prefix distinguishes the three ways a hook command string can behave.
type Prefix int

const (
	// PrefixNone marks a parallel member of the current batch.
	PrefixNone Prefix = iota
	// PrefixSync marks a barrier: finish all prior batch members first, run
	// this command alone, then start a new parallel batch.
	PrefixSync
	// PrefixFilter marks a barrier that additionally pipes the pipeline
	// context as JSON through the command's stdin/stdout.
	PrefixFilter
)

const (
	syncPrefix   = "sync:"
	filterPrefix = "filter:"
)

// Command is a single hook entry with its prefix already parsed off.
type Command struct {
	Prefix Prefix
	// Raw is the command string exactly as configured, prefix stripped, not
	// yet interpolated.
	Raw string
}

// Parse splits a raw configured hook string into its Prefix and the command
// text that follows it.
func Parse(raw string) Command {
	switch {
	case strings.HasPrefix(raw, filterPrefix):
		return Command{Prefix: PrefixFilter, Raw: strings.TrimPrefix(raw, filterPrefix)}
	case strings.HasPrefix(raw, syncPrefix):
		return Command{Prefix: PrefixSync, Raw: strings.TrimPrefix(raw, syncPrefix)}
	default:
		return Command{Prefix: PrefixNone, Raw: raw}
	}
}

// IsBarrier reports whether this command must run alone, outside any
// parallel batch.
func (c Command) IsBarrier() bool {
	return c.Prefix == PrefixSync || c.Prefix == PrefixFilter
}
