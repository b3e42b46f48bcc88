// Package dataset assembles career trajectories into a columnar dataset
// and handles its export, import, and summarization. A Dataset is an
// ordered collection of person-year records backed by a fixed Arrow
// schema; on disk it is a comma-delimited table, optionally
// zstd-compressed.
package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/lifecourse/careergen/internal/career"
	"github.com/lifecourse/careergen/internal/constants"
	"github.com/lifecourse/careergen/internal/logging"
)

// Dataset holds generated person-year records, ordered by person id and
// age once Sort has run. The zero value is an empty dataset.
type Dataset struct {
	Records []career.Record
}

// New wraps records in a Dataset without copying or reordering them.
func New(records []career.Record) *Dataset {
	return &Dataset{Records: records}
}

// Len returns the number of person-year records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// Persons returns the number of distinct person ids present.
func (d *Dataset) Persons() int {
	seen := make(map[int]struct{})
	for _, r := range d.Records {
		seen[r.PersonID] = struct{}{}
	}
	return len(seen)
}

// Sort orders records by (person id, age). Export relies on this
// ordering so that repeated runs with the same seed produce identical
// files.
func (d *Dataset) Sort() {
	sort.Slice(d.Records, func(i, j int) bool {
		a, b := d.Records[i], d.Records[j]
		if a.PersonID != b.PersonID {
			return a.PersonID < b.PersonID
		}
		return a.Age < b.Age
	})
}

// Options configures dataset generation. The zero value logs nothing
// and reports progress at the default interval.
type Options struct {
	// Logger receives progress events. Nil discards them.
	Logger *slog.Logger

	// Trace receives one JSONL event per generated individual. Nil
	// disables tracing.
	Trace *logging.TraceLogger

	// ProgressEvery sets how many individuals are generated between
	// progress log lines. Values below 1 fall back to the default.
	ProgressEvery int
}

// Generate produces trajectories for n individuals with sequential ids
// starting at 1 and collects them into a sorted Dataset. The context is
// checked between individuals; cancellation returns the context error
// and no partial dataset.
func Generate(ctx context.Context, gen *career.Generator, n int, opts Options) (*Dataset, error) {
	if n < 0 {
		return nil, fmt.Errorf("individual count must be non-negative, got %d", n)
	}

	every := opts.ProgressEvery
	if every < 1 {
		every = constants.DefaultProgressEvery
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ages := gen.Params().Ages
	span := ages.DeathAge - ages.MinAge + 1
	records := make([]career.Record, 0, n*span)

	for id := 1; id <= n; id++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation canceled after %d of %d individuals: %w", id-1, n, err)
		}

		trajectory, err := gen.GenerateCareer(id)
		if err != nil {
			return nil, fmt.Errorf("failed to generate individual %d: %w", id, err)
		}
		records = append(records, trajectory...)
		opts.Trace.Log(traceEvent(trajectory))

		if id%every == 0 {
			logger.Info("generating careers", "completed", id, "total", n)
		}
	}

	d := New(records)
	d.Sort()
	logger.Info("dataset generated", "individuals", n, "records", d.Len())
	return d, nil
}

// traceEvent condenses one trajectory into a single trace record.
func traceEvent(trajectory []career.Record) map[string]any {
	if len(trajectory) == 0 {
		return map[string]any{}
	}

	event := map[string]any{
		"person_id":     trajectory[0].PersonID,
		"initial_state": trajectory[0].State.Name(),
		"final_state":   trajectory[len(trajectory)-1].State.Name(),
	}

	employedYears := 0
	var peakIncome float64
	for _, r := range trajectory {
		if r.State == career.StateEmployed {
			employedYears++
			if r.Income > peakIncome {
				peakIncome = r.Income
			}
		}
		if r.State == career.StateDeceased {
			if _, ok := event["death_age"]; !ok {
				event["death_age"] = r.Age
			}
		}
	}
	event["employed_years"] = employedYears
	event["peak_income"] = peakIncome
	return event
}
