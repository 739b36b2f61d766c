package export

import (
	"context"
	"fmt"
	"time"

	common_models "staff-acl/internal/common/models"
	"staff-acl/internal/features/audit"
	"staff-acl/internal/features/level"
	"staff-acl/internal/features/permission"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	grantsSheet = "Grants"
	levelsSheet = "Levels"
	timeLayout  = "2006-01-02 15:04:05"
)

type ExportService interface {
	// ExportStaff renders every scoped grant and the level grant of a staff member as xlsx.
	ExportStaff(ctx context.Context, staffID int64) ([]byte, string, error)
}

type ExportServiceImpl struct {
	Grants       permission.GrantService
	Levels       level.LevelService
	AuditService audit.AuditService
	Logger       *zap.Logger

	now func() time.Time
}

func NewExportService(grants permission.GrantService, levels level.LevelService, auditService audit.AuditService, logger *zap.Logger) ExportService {
	return &ExportServiceImpl{
		Grants:       grants,
		Levels:       levels,
		AuditService: auditService,
		Logger:       logger,
		now:          time.Now,
	}
}

func (s *ExportServiceImpl) ExportStaff(ctx context.Context, staffID int64) ([]byte, string, error) {
	grants, err := s.Grants.ListForStaff(ctx, staffID)
	if err != nil {
		return nil, "", err
	}
	levels, err := s.Levels.GetLevels(ctx, staffID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", grantsSheet); err != nil {
		return nil, "", err
	}
	if _, err := f.NewSheet(levelsSheet); err != nil {
		return nil, "", err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	now := s.now()
	rows := make([][]any, 0, len(grants))
	for _, g := range grants {
		customer := "ALL"
		if g.CustomerID != nil {
			customer = fmt.Sprintf("%d", *g.CustomerID)
		}
		expires := ""
		if g.ExpiresAt != nil {
			expires = g.ExpiresAt.Format(timeLayout)
		}
		rows = append(rows, []any{
			g.ID.Hex(), string(g.Scope), customer, g.Granted, g.IsValid(now),
			g.GrantedBy, g.GrantedAt.Format(timeLayout), expires, g.Notes,
		})
	}
	if err := writeSheet(f, grantsSheet, headerStyle,
		[]string{"ID", "Scope", "Customer", "Granted", "Valid", "Granted By", "Granted At", "Expires At", "Notes"},
		rows,
	); err != nil {
		return nil, "", err
	}

	var levelRows [][]any
	if levels == nil {
		levelRows = append(levelRows, []any{"(not configured)", "all fields visible"})
	} else {
		for _, field := range level.Fields() {
			l, _ := levels.Get(field)
			levelRows = append(levelRows, []any{field, string(l)})
		}
	}
	if err := writeSheet(f, levelsSheet, headerStyle, []string{"Field", "Level"}, levelRows); err != nil {
		return nil, "", err
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	if err := s.AuditService.LogChange(ctx, common_models.AuditActionExport, "field_permission", fmt.Sprintf("staff:%d", staffID), map[string]common_models.Change{
		"grants": {New: len(grants)},
	}); err != nil {
		s.Logger.Warn("audit write failed", zap.String("action", string(common_models.AuditActionExport)), zap.Error(err))
	}

	filename := fmt.Sprintf("staff_%d_permissions_%s.xlsx", staffID, now.Format("20060102"))
	return buffer.Bytes(), filename, nil
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, columns []string, rows [][]any) error {
	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for rowIdx, row := range rows {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
		}
	}

	for i := range columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, 18)
	}
	return nil
}
