// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package insight

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bionicop/seo-flow/pkg/types"
)

// FormatText writes a readable rendering of an insight to w.
func FormatText(ins *types.Insight, w io.Writer) {
	fmt.Fprintf(w, "Insight for %q (%s)\n\n", ins.Keyword, ins.Model)
	fmt.Fprintln(w, ins.Summary)

	if len(ins.Findings) > 0 {
		fmt.Fprintln(w, "\nFindings:")
		for _, f := range ins.Findings {
			fmt.Fprintf(w, "  - %s (confidence %.0f%%)\n", f.Text, f.Confidence*100)
		}
	}
	if len(ins.Recommendations) > 0 {
		fmt.Fprintln(w, "\nRecommendations:")
		for _, r := range ins.Recommendations {
			fmt.Fprintf(w, "  [%s] %s\n", r.Priority, r.Action)
		}
	}
}

// FormatJSON writes the insight as indented JSON to w.
func FormatJSON(ins *types.Insight, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ins)
}
