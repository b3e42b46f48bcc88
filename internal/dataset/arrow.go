package dataset

import (
	"fmt"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/lifecourse/careergen/internal/career"
)

// Schema returns the Arrow schema of the exported table. Column order,
// names, and types are part of the file format: person_id, year, age,
// and the numeric state code are int64, income is float64, and
// state_name is the human-readable label for the state code.
func Schema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "person_id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "year", Type: arrow.PrimitiveTypes.Int64},
		{Name: "age", Type: arrow.PrimitiveTypes.Int64},
		{Name: "state", Type: arrow.PrimitiveTypes.Int64},
		{Name: "income", Type: arrow.PrimitiveTypes.Float64},
		{Name: "state_name", Type: arrow.BinaryTypes.String},
	}, nil)
}

// Record builds a single Arrow record holding every row of the dataset.
// The caller owns the returned record and must Release it.
func (d *Dataset) Record(mem memory.Allocator) arrow.Record {
	builder := array.NewRecordBuilder(mem, Schema())
	defer builder.Release()

	personIDs := builder.Field(0).(*array.Int64Builder)
	years := builder.Field(1).(*array.Int64Builder)
	ages := builder.Field(2).(*array.Int64Builder)
	states := builder.Field(3).(*array.Int64Builder)
	incomes := builder.Field(4).(*array.Float64Builder)
	names := builder.Field(5).(*array.StringBuilder)

	for _, r := range d.Records {
		personIDs.Append(int64(r.PersonID))
		years.Append(int64(r.Year))
		ages.Append(int64(r.Age))
		states.Append(int64(r.State))
		incomes.Append(r.Income)
		names.Append(r.State.Name())
	}

	return builder.NewRecord()
}

// fromRecord converts one Arrow record batch back into trajectory
// records. It rejects unknown state codes and rows whose state_name
// label disagrees with the numeric code.
func fromRecord(rec arrow.Record) ([]career.Record, error) {
	personIDs := rec.Column(0).(*array.Int64)
	years := rec.Column(1).(*array.Int64)
	ages := rec.Column(2).(*array.Int64)
	states := rec.Column(3).(*array.Int64)
	incomes := rec.Column(4).(*array.Float64)
	names := rec.Column(5).(*array.String)

	out := make([]career.Record, rec.NumRows())
	for i := range out {
		state := career.State(states.Value(i))
		if !state.Valid() {
			return nil, fmt.Errorf("row %d: unknown state code %d", i, states.Value(i))
		}
		if name := names.Value(i); name != state.Name() {
			return nil, fmt.Errorf("row %d: state_name %q does not match state code %d (%s)",
				i, name, int(state), state.Name())
		}
		out[i] = career.Record{
			PersonID: int(personIDs.Value(i)),
			Year:     int(years.Value(i)),
			Age:      int(ages.Value(i)),
			State:    state,
			Income:   incomes.Value(i),
		}
	}
	return out, nil
}
