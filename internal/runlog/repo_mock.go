package runlog

import (
	"context"
	"errors"
)

type repoMock struct {
	runs      []Run
	returnErr error
}

func newRepoMock() *repoMock {
	return &repoMock{}
}

var errRunsRepoMock = errors.New("runs repo mock error")

func (r *repoMock) List(_ context.Context) ([]Run, error) {
	if r.returnErr != nil {
		return nil, r.returnErr
	}
	return r.runs, nil
}

func (r *repoMock) Add(_ context.Context, run Run) error {
	if r.returnErr != nil {
		return r.returnErr
	}
	r.runs = append(r.runs, run)
	return nil
}
