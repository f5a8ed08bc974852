package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClientShapesOutputByPrompt(t *testing.T) {
	client := MockClient{}
	ctx := context.Background()

	topics, err := client.Complete(ctx, "Generate 5 engaging blog post topics for developers")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(topics), "\n")
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "1."))

	outline, err := client.Complete(ctx, "Create a detailed outline for a blog post about 'Go'")
	require.NoError(t, err)
	assert.Contains(t, outline, "Introduction")
	assert.Contains(t, outline, "Conclusion")

	content, err := client.Complete(ctx, "Write a complete blog post following this outline")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(strings.Fields(content)), 300)

	polished, err := client.Complete(ctx, "Please edit and polish the following blog post content: draft")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(polished, "Polished: "))
}
