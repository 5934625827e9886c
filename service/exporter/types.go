package exporter

import (
	"context"
	"io"
)

type RoomResultExporter interface {
	Export(ctx context.Context, roomID string, writer io.Writer) error
}
