package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/promptforge/prompt-service/internal/repositories"
)

// exportBatchLimit bounds a single export; prompt history past this is cut off
// rather than streamed.
const exportBatchLimit = 10000

const exportSheet = "Prompts"

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportPrompts renders the user's prompt history as an .xlsx workbook,
// newest first.
func (s *exportService) ExportPrompts(ctx context.Context, userID uint) ([]byte, string, error) {
	prompts, _, err := s.repo.Prompt().ListByUser(ctx, userID, repositories.PromptFilters{
		Limit: exportBatchLimit,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to list prompts: %w", err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, "", fmt.Errorf("failed to set sheet name: %w", err)
	}

	headers := []string{"Title", "Category", "Response Style", "Input Text", "Generated Prompt", "AI Response", "Created At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, prompt := range prompts {
		row := []interface{}{
			prompt.Title,
			prompt.Category.DisplayName(),
			string(prompt.ResponseStyle),
			prompt.InputText,
			prompt.GeneratedPrompt,
			prompt.AIResponse,
			prompt.CreatedAt.Format(time.RFC3339),
		}
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, "", fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("prompts_export_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
