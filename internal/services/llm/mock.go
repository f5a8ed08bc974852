package llm

import (
	"context"
	"fmt"
	"strings"
)

// MockClient is a local placeholder that never calls an external model.
// It keys off the prompt wording to return output shaped like the step
// expects, so a full chain run works offline.
type MockClient struct{}

func (MockClient) Complete(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "blog post topics"):
		var sb strings.Builder
		for i := 1; i <= 5; i++ {
			fmt.Fprintf(&sb, "%d. Placeholder topic number %d\n", i, i)
		}
		return sb.String(), nil
	case strings.Contains(prompt, "detailed outline"):
		var sb strings.Builder
		for _, section := range []string{"Introduction", "Main Body", "Conclusion"} {
			sb.WriteString(section + "\n")
			sb.WriteString("  - placeholder point one\n")
			sb.WriteString("  - placeholder point two\n")
		}
		return sb.String(), nil
	case strings.Contains(prompt, "edit and polish"):
		return "Polished: " + prompt, nil
	default:
		// Content step needs to clear the minimum word count
		return strings.Repeat("placeholder content sentence for the draft. ", 80), nil
	}
}
