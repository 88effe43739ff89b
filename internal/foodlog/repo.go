package foodlog

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"healthdash/internal/telemetry/tracing"
	"healthdash/pkg"
)

// column order is fixed for compatibility with existing data files
var csvHeader = []string{"date", "meal", "food", "calories_in", "exercise", "calories_out"}

// Repo persists food log entries in a single CSV file. The whole file
// is read and rewritten on every change; the mutex serializes that
// cycle across handler goroutines.
type Repo struct {
	filePath string
	mu       sync.Mutex
}

func NewRepo(filePath string) *Repo {
	return &Repo{
		filePath: filePath,
	}
}

func (r *Repo) List(ctx context.Context) (_ []Entry, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.foodlog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

// Add appends the given entries, in argument order, after the existing
// ones and rewrites the file.
func (r *Repo) Add(ctx context.Context, entries []Entry) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.foodlog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.loadLocked()
	if err != nil {
		return err
	}

	return r.writeLocked(append(existing, entries...))
}

// loadLocked reads all entries in file order. A missing file is an
// empty log, not an error.
func (r *Repo) loadLocked() ([]Entry, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open food log file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read food log file: %w", err)
	}

	var entries []Entry
	for i, record := range records {
		if i == 0 && len(record) > 0 && record[0] == csvHeader[0] {
			continue
		}
		if len(record) != len(csvHeader) {
			return nil, fmt.Errorf("food log record %d has %d fields, want %d", i, len(record), len(csvHeader))
		}

		date, err := pkg.ParseDay(record[0])
		if err != nil {
			return nil, fmt.Errorf("food log record %d: %w", i, err)
		}
		caloriesIn, err := strconv.Atoi(record[3])
		if err != nil {
			return nil, fmt.Errorf("food log record %d, calories_in: %w", i, err)
		}
		caloriesOut, err := strconv.Atoi(record[5])
		if err != nil {
			return nil, fmt.Errorf("food log record %d, calories_out: %w", i, err)
		}

		entries = append(entries, Entry{
			Date:        date,
			Meal:        Meal(record[1]),
			Food:        record[2],
			CaloriesIn:  caloriesIn,
			Exercise:    record[4],
			CaloriesOut: caloriesOut,
		})
	}

	return entries, nil
}

func (r *Repo) writeLocked(entries []Entry) error {
	file, err := os.Create(r.filePath)
	if err != nil {
		return fmt.Errorf("create food log file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write food log header: %w", err)
	}
	for _, entry := range entries {
		record := []string{
			entry.Date.String(),
			string(entry.Meal),
			entry.Food,
			strconv.Itoa(entry.CaloriesIn),
			entry.Exercise,
			strconv.Itoa(entry.CaloriesOut),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write food log record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush food log file: %w", err)
	}
	return nil
}
