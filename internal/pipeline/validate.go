package pipeline

import "fmt"

// requiredFields lists the Context fields a filter hook's replacement JSON
// document must populate. This is the schema validation spec.md §4.3
// requires after a filter: hook replaces the context wholesale: "all
// required fields must be present after replacement; otherwise the hook
// fails."
var requiredFields = []string{"version", "tag", "date", "owner", "repo"}

// Validate checks that a context carries every field a filter hook's
// replacement document must supply. It is called after every filter: hook
// runs, and never during normal phase-to-phase handoff (phases only ever add
// to an already-valid context).
func (c *Context) Validate() error {
	var missing []string
	if c.Version == "" {
		missing = append(missing, "version")
	}
	if c.ResolvedTag() == "" {
		missing = append(missing, "tag")
	}
	if c.Date == "" {
		missing = append(missing, "date")
	}
	if c.Owner == "" {
		missing = append(missing, "owner")
	}
	if c.Repo == "" {
		missing = append(missing, "repo")
	}
	if len(missing) > 0 {
		return fmt.Errorf("pipeline context missing required fields: %v", missing)
	}
	return nil
}
