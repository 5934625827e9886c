package factory

import (
	"github.com/codearena/arena_controller/pkg/logger"
	"github.com/codearena/arena_controller/service/exporter"
	"github.com/codearena/arena_controller/service/exporter/csv"
	"github.com/codearena/arena_controller/service/exporter/xlsx"
	"gorm.io/gorm"
)

type RoomResultExporterType string

const (
	CSVRoomResultExporter  RoomResultExporterType = "csv"
	XLSXRoomResultExporter RoomResultExporterType = "xlsx"
)

var ExporterSuffixMap = map[RoomResultExporterType]string{
	CSVRoomResultExporter:  ".csv",
	XLSXRoomResultExporter: ".xlsx",
}

var ExporterContentTypeMap = map[RoomResultExporterType]string{
	CSVRoomResultExporter:  "text/csv",
	XLSXRoomResultExporter: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

type RoomResultExporterFactory struct {
	factory map[RoomResultExporterType]exporter.RoomResultExporter
	db      *gorm.DB
	log     logger.Logger
}

func NewRoomResultExporterFactory(db *gorm.DB, log logger.Logger) *RoomResultExporterFactory {
	return &RoomResultExporterFactory{
		factory: map[RoomResultExporterType]exporter.RoomResultExporter{
			CSVRoomResultExporter:  csv.NewCSVRoomResultExporter(db, log),
			XLSXRoomResultExporter: xlsx.NewXLSXRoomResultExporter(db, log),
		},
		db:  db,
		log: log,
	}
}

func (f *RoomResultExporterFactory) GetRoomResultExporter(exporterType RoomResultExporterType) exporter.RoomResultExporter {
	if exp, exists := f.factory[exporterType]; exists {
		return exp
	}

	switch exporterType {
	case CSVRoomResultExporter:
		f.factory[CSVRoomResultExporter] = csv.NewCSVRoomResultExporter(f.db, f.log)
		return f.factory[CSVRoomResultExporter]
	case XLSXRoomResultExporter:
		f.factory[XLSXRoomResultExporter] = xlsx.NewXLSXRoomResultExporter(f.db, f.log)
		return f.factory[XLSXRoomResultExporter]
	}

	return nil
}
