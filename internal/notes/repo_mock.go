package notes

import (
	"context"
	"errors"
	"fmt"
)

type repoMock struct {
	notes     map[int]Note
	returnErr error
}

func newRepoMock() *repoMock {
	return &repoMock{
		notes: map[int]Note{},
	}
}

var errNotesRepoMock = errors.New("notes repo mock error")

func (r *repoMock) List(_ context.Context) ([]Note, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}
	notes := make([]Note, 0, len(r.notes))
	for id := 1; len(notes) < len(r.notes); id++ {
		if note, ok := r.notes[id]; ok {
			notes = append(notes, note)
		}
	}
	return notes, nil
}

func (r *repoMock) Add(_ context.Context, note Note) (Note, error) {
	if r.returnErr != nil {
		return Note{}, r.returnErr
	}
	maxId := 0
	for id := range r.notes {
		if id > maxId {
			maxId = id
		}
	}
	note.Id = maxId + 1
	r.notes[note.Id] = note
	return note, nil
}

func (r *repoMock) Update(_ context.Context, note Note) error {
	if r.returnErr != nil {
		return r.returnErr
	}
	stored, ok := r.notes[note.Id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoteNotFound, note.Id)
	}
	stored.Title = note.Title
	stored.Content = note.Content
	r.notes[note.Id] = stored
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	if r.returnErr != nil {
		return r.returnErr
	}
	if _, ok := r.notes[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNoteNotFound, id)
	}
	delete(r.notes, id)
	return nil
}
