package services

import (
	"fmt"
)

// Prompt builders for the blog generation chain. Each step's prompt embeds
// the output of the previous step.

func topicsPrompt(domain, targetAudience string) string {
	return fmt.Sprintf(
		"Generate 5 engaging blog post topics for %s in the %s domain. "+
			"Each topic should be unique and interesting. "+
			"Return one topic per line without any extra commentary.",
		targetAudience, domain)
}

func outlinePrompt(topic string) string {
	return fmt.Sprintf(
		"Create a detailed outline for a blog post about '%s'. "+
			"Include main sections and key points for each section. "+
			"Put section headings on their own lines and indent the key points below them.",
		topic)
}

func contentPrompt(outline string) string {
	return fmt.Sprintf(
		"Write a complete blog post following this outline. "+
			"Cover every section and its key points in order:\n\n%s",
		outline)
}

func polishPrompt(content string) string {
	return fmt.Sprintf(
		"Please edit and polish the following blog post content. "+
			"Improve clarity, fix any grammatical issues, and enhance the overall flow:\n\n%s",
		content)
}
