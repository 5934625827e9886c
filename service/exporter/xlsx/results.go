package xlsx

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/codearena/arena_controller/pkg/logger"
	"github.com/codearena/arena_controller/service/exporter"
	"github.com/codearena/arena_controller/service/exporter/common"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type XLSXRoomResultExporter struct {
	log logger.Logger
	db  *gorm.DB
}

var _ exporter.RoomResultExporter = (*XLSXRoomResultExporter)(nil)

func NewXLSXRoomResultExporter(db *gorm.DB, log logger.Logger) exporter.RoomResultExporter {
	return &XLSXRoomResultExporter{
		db:  db,
		log: log,
	}
}

func (e *XLSXRoomResultExporter) Export(ctx context.Context, roomID string, writer io.Writer) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.log.ErrorContext(ctx, "close excel file failed", logger.Error(err))
		}
	}()

	sheetName := "对局结果"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet failed: %w", err)
	}
	f.SetActiveSheet(index)

	if err = e.writeHeader(f, sheetName); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	results, err := common.FetchRoomResults(e.db, ctx, roomID)
	if err != nil {
		return fmt.Errorf("xlsx exporter fetch room results failed: %w", err)
	}

	currentRow := 2 // 从第二行开始写入数据 (第一行是表头)
	for _, result := range results {
		winner := ""
		if result.IsWinner {
			winner = "胜者"
		}
		bestTime := ""
		if result.AcceptedCount > 0 {
			bestTime = strconv.Itoa(result.BestTimeMs) + "ms"
		}
		rowData := []interface{}{
			result.UserID,
			result.Username,
			result.Attempts,
			result.AcceptedCount,
			bestTime,
			winner,
		}

		for col, value := range rowData {
			cell, err := excelize.CoordinatesToCellName(col+1, currentRow)
			if err != nil {
				return fmt.Errorf("get cell name failed: %w", err)
			}
			if err = f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("set cell value failed: %w", err)
			}
		}
		currentRow++
	}

	if err = f.Write(writer); err != nil {
		return fmt.Errorf("write excel file failed: %w", err)
	}
	return nil
}

// writeHeader 写入 Excel 表头
func (e *XLSXRoomResultExporter) writeHeader(f *excelize.File, sheetName string) error {
	headers := []string{
		"用户ID",
		"用户名",
		"提交次数",
		"通过次数",
		"最短耗时",
		"胜负",
	}

	// 设置表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E0E0E0"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style failed: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("get cell name failed: %w", err)
		}
		if err = f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("set header value failed: %w", err)
		}
		if err = f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("set header style failed: %w", err)
		}
	}

	// 设置列宽
	columnWidths := map[string]float64{
		"A": 24, // 用户ID
		"B": 15, // 用户名
		"C": 12, // 提交次数
		"D": 12, // 通过次数
		"E": 12, // 最短耗时
		"F": 10, // 胜负
	}

	for col, width := range columnWidths {
		if err = f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width failed: %w", err)
		}
	}

	return nil
}
