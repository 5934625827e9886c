package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/codearena/arena_controller/pkg/logger"
	"github.com/codearena/arena_controller/service/exporter"
	"github.com/codearena/arena_controller/service/exporter/common"
	"gorm.io/gorm"
)

type CSVRoomResultExporter struct {
	log logger.Logger
	db  *gorm.DB
}

var _ exporter.RoomResultExporter = (*CSVRoomResultExporter)(nil)

func NewCSVRoomResultExporter(db *gorm.DB, log logger.Logger) exporter.RoomResultExporter {
	return &CSVRoomResultExporter{
		db:  db,
		log: log,
	}
}

func (e *CSVRoomResultExporter) Export(ctx context.Context, roomID string, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	if err := e.writeHeader(csvWriter); err != nil {
		return fmt.Errorf("write header failed: %w", err)
	}

	results, err := common.FetchRoomResults(e.db, ctx, roomID)
	if err != nil {
		return fmt.Errorf("csv exporter fetch room results failed: %w", err)
	}

	record := make([]string, 0, 6)
	for _, result := range results {
		record = record[:0] // 清空记录
		winner := ""
		if result.IsWinner {
			winner = "胜者"
		}
		bestTime := ""
		if result.AcceptedCount > 0 {
			bestTime = strconv.Itoa(result.BestTimeMs) + "ms"
		}
		record = append(record,
			result.UserID,
			result.Username,
			strconv.Itoa(result.Attempts),
			strconv.Itoa(result.AcceptedCount),
			bestTime,
			winner)
		if err = csvWriter.Write(record); err != nil {
			return fmt.Errorf("write record failed: %w", err)
		}
	}
	return nil
}

// writeHeader 写入 CSV 头部
func (e *CSVRoomResultExporter) writeHeader(csvWriter *csv.Writer) error {
	headers := []string{
		"用户ID",
		"用户名",
		"提交次数",
		"通过次数",
		"最短耗时",
		"胜负",
	}
	return csvWriter.Write(headers)
}
