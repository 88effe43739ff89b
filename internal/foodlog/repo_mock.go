package foodlog

import (
	"context"
	"errors"
)

type repoMock struct {
	entries   []Entry
	returnErr error
}

func newRepoMock() *repoMock {
	return &repoMock{}
}

var errFoodLogRepoMock = errors.New("food log repo mock error")

func (r *repoMock) List(_ context.Context) ([]Entry, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}
	return r.entries, nil
}

func (r *repoMock) Add(_ context.Context, entries []Entry) error {
	if r.returnErr != nil {
		return r.returnErr
	}
	r.entries = append(r.entries, entries...)
	return nil
}
