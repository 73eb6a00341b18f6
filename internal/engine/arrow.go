package engine

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"gdpseries/internal/models"
)

// ObservationSchema is the Arrow layout of exported observations.
var ObservationSchema = arrow.NewSchema([]arrow.Field{
	{Name: "year", Type: arrow.PrimitiveTypes.Int32},
	{Name: "region", Type: arrow.BinaryTypes.String},
	{Name: "group", Type: arrow.BinaryTypes.String},
	{Name: "series_metric", Type: arrow.BinaryTypes.String},
	{Name: "value", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// ObservationRecord builds one Arrow record from obs. The caller owns the
// record and must Release it.
func ObservationRecord(mem memory.Allocator, obs []models.Observation) arrow.Record {
	b := array.NewRecordBuilder(mem, ObservationSchema)
	defer b.Release()

	years := b.Field(0).(*array.Int32Builder)
	regions := b.Field(1).(*array.StringBuilder)
	groups := b.Field(2).(*array.StringBuilder)
	metrics := b.Field(3).(*array.StringBuilder)
	values := b.Field(4).(*array.Float64Builder)

	years.Reserve(len(obs))
	values.Reserve(len(obs))
	for _, o := range obs {
		years.Append(int32(o.Year))
		regions.Append(o.Region)
		groups.Append(o.Group)
		metrics.Append(o.SeriesMetric)
		values.Append(o.Value)
	}
	return b.NewRecord()
}

// WriteArrow writes obs to w as an Arrow IPC stream holding a single record.
// A nil mem uses the Go allocator.
func WriteArrow(w io.Writer, mem memory.Allocator, obs []models.Observation) error {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	rec := ObservationRecord(mem, obs)
	defer rec.Release()

	iw := ipc.NewWriter(w, ipc.WithSchema(ObservationSchema), ipc.WithAllocator(mem))
	if err := iw.Write(rec); err != nil {
		iw.Close()
		return fmt.Errorf("write arrow record: %w", err)
	}
	if err := iw.Close(); err != nil {
		return fmt.Errorf("close arrow stream: %w", err)
	}
	return nil
}
