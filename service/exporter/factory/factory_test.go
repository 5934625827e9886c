package factory

import (
	"testing"

	"github.com/codearena/arena_controller/pkg/logger"
)

func TestGetRoomResultExporter(t *testing.T) {
	t.Parallel()

	f := NewRoomResultExporterFactory(nil, logger.NewNopLogger())

	if f.GetRoomResultExporter(CSVRoomResultExporter) == nil {
		t.Fatal("expected csv exporter")
	}
	if f.GetRoomResultExporter(XLSXRoomResultExporter) == nil {
		t.Fatal("expected xlsx exporter")
	}
	if f.GetRoomResultExporter("pdf") != nil {
		t.Fatal("expected nil for unsupported format")
	}
}

func TestExporterMaps(t *testing.T) {
	t.Parallel()

	if ExporterSuffixMap[CSVRoomResultExporter] != ".csv" || ExporterSuffixMap[XLSXRoomResultExporter] != ".xlsx" {
		t.Fatalf("unexpected suffix map: %v", ExporterSuffixMap)
	}
	for _, typ := range []RoomResultExporterType{CSVRoomResultExporter, XLSXRoomResultExporter} {
		if ExporterContentTypeMap[typ] == "" {
			t.Fatalf("missing content type for %s", typ)
		}
	}
}
