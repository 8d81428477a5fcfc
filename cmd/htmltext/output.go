package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/mrjoshuak/htmltext"
)

// render formats a result. Text output lists saved tags as "name: text"
// lines in tag name order, then the content, then chunk reports if present.
func render(result *htmltext.Result, format string) ([]byte, error) {
	if format == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}

	var b strings.Builder
	for _, name := range slices.Sorted(maps.Keys(result.SavedTags)) {
		for _, text := range result.SavedTags[name] {
			fmt.Fprintf(&b, "%s: %s\n", name, text)
		}
	}
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	b.WriteString(result.Content)
	b.WriteByte('\n')

	if len(result.Chunks) > 0 {
		b.WriteString("\nweight\tkept\tchunk\n")
		for _, c := range result.Chunks {
			kept := "no"
			switch {
			case c.Failed:
				kept = "failed"
			case c.Accepted:
				kept = "yes"
			}
			fmt.Fprintf(&b, "%.3f\t%s\t%s\n", c.Weight, kept, c.Text)
		}
	}
	return []byte(b.String()), nil
}
