package notes

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
var csvHeader = []string{"id", "date", "title", "content"}

// Repo persists notes in a single CSV file, rewritten as a whole on
// every change. Ids are assigned as max existing id plus one, so an id
// can be reused after the highest note is deleted.
type Repo struct {
	filePath string
	mu       sync.Mutex
}

func NewRepo(filePath string) *Repo {
	return &Repo{
		filePath: filePath,
	}
}

func (r *Repo) List(ctx context.Context) (_ []Note, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.notes.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

// Add stores the note with a newly assigned id and returns it.
func (r *Repo) Add(ctx context.Context, note Note) (_ Note, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.notes.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.loadLocked()
	if err != nil {
		return Note{}, err
	}

	maxId := 0
	for _, n := range existing {
		if n.Id > maxId {
			maxId = n.Id
		}
	}
	note.Id = maxId + 1

	if err := r.writeLocked(append(existing, note)); err != nil {
		return Note{}, err
	}
	return note, nil
}

// Update replaces the title and content of the note with the given id.
// The original date is kept.
func (r *Repo) Update(ctx context.Context, note Note) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.notes.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.loadLocked()
	if err != nil {
		return err
	}

	for i := range existing {
		if existing[i].Id == note.Id {
			existing[i].Title = note.Title
			existing[i].Content = note.Content
			return r.writeLocked(existing)
		}
	}

	return fmt.Errorf("%w: %d", ErrNoteNotFound, note.Id)
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.notes.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.loadLocked()
	if err != nil {
		return err
	}

	for i := range existing {
		if existing[i].Id == id {
			return r.writeLocked(append(existing[:i], existing[i+1:]...))
		}
	}

	return fmt.Errorf("%w: %d", ErrNoteNotFound, id)
}

func (r *Repo) loadLocked() ([]Note, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open notes file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read notes file: %w", err)
	}

	var notes []Note
	for i, record := range records {
		if i == 0 && len(record) > 0 && record[0] == csvHeader[0] {
			continue
		}
		if len(record) != len(csvHeader) {
			return nil, fmt.Errorf("notes record %d has %d fields, want %d", i, len(record), len(csvHeader))
		}

		id, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("notes record %d, id: %w", i, err)
		}
		date, err := pkg.ParseDay(record[1])
		if err != nil {
			return nil, fmt.Errorf("notes record %d: %w", i, err)
		}

		notes = append(notes, Note{
			Id:      id,
			Date:    date,
			Title:   record[2],
			Content: record[3],
		})
	}

	return notes, nil
}

func (r *Repo) writeLocked(notes []Note) error {
	file, err := os.Create(r.filePath)
	if err != nil {
		return fmt.Errorf("create notes file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write notes header: %w", err)
	}
	for _, note := range notes {
		record := []string{
			strconv.Itoa(note.Id),
			note.Date.String(),
			note.Title,
			note.Content,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write notes record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush notes file: %w", err)
	}
	return nil
}
