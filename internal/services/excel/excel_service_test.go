package excel

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/inkwellvn/blog-generator-services-backend/internal/models"
)

func samplePosts() []*models.BlogPost {
	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	return []*models.BlogPost{
		{
			ID:              "a1b2c3",
			Domain:          "technology",
			TargetAudience:  "developers",
			ChosenTopic:     "1. Getting started with Go",
			Status:          models.BlogPostStatusCompleted,
			PolishedContent: "one two three four five",
			CreatedAt:       now,
		},
		{
			ID:             "d4e5f6",
			Domain:         "cooking",
			TargetAudience: "home chefs",
			Status:         models.BlogPostStatusFailed,
			ErrorMessage:   "failed to generate topics: api unavailable",
			CreatedAt:      now,
		},
	}
}

func TestBuildWorkbook(t *testing.T) {
	svc := NewExcelService(t.TempDir())

	f, err := svc.BuildWorkbook(samplePosts())
	require.NoError(t, err)
	defer f.Close()

	sheet := "Blog Posts"

	// Header row
	for i, want := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		require.NoError(t, err)
		got, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// First data row
	id, _ := f.GetCellValue(sheet, "A2")
	assert.Equal(t, "a1b2c3", id)
	domain, _ := f.GetCellValue(sheet, "B2")
	assert.Equal(t, "technology", domain)
	status, _ := f.GetCellValue(sheet, "E2")
	assert.Equal(t, models.BlogPostStatusCompleted, status)
	words, _ := f.GetCellValue(sheet, "F2")
	assert.Equal(t, "5", words)

	// Failed post carries its error message
	errMsg, _ := f.GetCellValue(sheet, "G3")
	assert.Contains(t, errMsg, "api unavailable")
}

func TestExportBlogPostsWritesFile(t *testing.T) {
	dir := t.TempDir()
	svc := NewExcelService(dir)

	result, err := svc.ExportBlogPosts("user-1", samplePosts())
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Filename, "blog_posts_user-1_")

	info, err := os.Stat(result.FilePath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNewExcelServiceCreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/exports"
	NewExcelService(dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
