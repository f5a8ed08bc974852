package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/inkwellvn/blog-generator-services-backend/internal/models"
	"github.com/inkwellvn/blog-generator-services-backend/internal/utils"
)

// Service handles Excel export of blog generation history
type Service struct {
	exportsDir string
}

// NewExcelService creates a new Excel service instance
func NewExcelService(exportsDir string) *Service {
	// Create exports directory if it doesn't exist
	if _, err := os.Stat(exportsDir); os.IsNotExist(err) {
		os.MkdirAll(exportsDir, 0755)
	}

	return &Service{
		exportsDir: exportsDir,
	}
}

// ExportResult contains the result of an export operation
type ExportResult struct {
	Success  bool
	Message  string
	Filename string
	FilePath string
}

var exportHeaders = []string{
	"ID", "Domain", "Target Audience", "Chosen Topic", "Status",
	"Word Count", "Error", "Created At",
}

// ExportBlogPosts writes the given posts to an xlsx file in the exports
// directory and returns the file location.
func (s *Service) ExportBlogPosts(userID string, posts []*models.BlogPost) (*ExportResult, error) {
	timestamp := time.Now().Unix()
	filename := fmt.Sprintf("blog_posts_%s_%d.xlsx", userID, timestamp)
	filePath := filepath.Join(s.exportsDir, filename)

	f, err := s.BuildWorkbook(posts)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := f.SaveAs(filePath); err != nil {
		return nil, fmt.Errorf("failed to save export file: %w", err)
	}

	return &ExportResult{
		Success:  true,
		Message:  fmt.Sprintf("Exported %d blog posts", len(posts)),
		Filename: filename,
		FilePath: filePath,
	}, nil
}

// BuildWorkbook builds the export workbook for a set of blog posts
func (s *Service) BuildWorkbook(posts []*models.BlogPost) (*excelize.File, error) {
	f := excelize.NewFile()

	sheet := "Blog Posts"
	f.SetSheetName("Sheet1", sheet)

	// Create styles for different statuses
	completedStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"C6EFCE"}, // Green
			Pattern: 1,
		},
	})

	failedStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"FFC7CE"}, // Red
			Pattern: 1,
		},
	})

	runningStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"FFC000"}, // Orange
			Pattern: 1,
		},
	})

	// Write header row
	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	// Write data rows
	for i, post := range posts {
		row := i + 2
		values := []interface{}{
			post.ID,
			post.Domain,
			post.TargetAudience,
			post.ChosenTopic,
			post.Status,
			utils.WordCount(post.PolishedContent),
			post.ErrorMessage,
			post.CreatedAt.Format(time.RFC3339),
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to build data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}

		// Color the status cell by outcome
		statusCell, _ := excelize.CoordinatesToCellName(5, row)
		switch post.Status {
		case models.BlogPostStatusCompleted:
			f.SetCellStyle(sheet, statusCell, statusCell, completedStyle)
		case models.BlogPostStatusFailed:
			f.SetCellStyle(sheet, statusCell, statusCell, failedStyle)
		case models.BlogPostStatusRunning, models.BlogPostStatusPending:
			f.SetCellStyle(sheet, statusCell, statusCell, runningStyle)
		}
	}

	// Widen the text-heavy columns
	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", "D", 30)
	f.SetColWidth(sheet, "G", "H", 24)

	return f, nil
}
