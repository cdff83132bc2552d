package ledger

import "context"

type fakeStore struct {
	state    GameState
	has      bool
	loadErr  error
	saveErr  error
	clearErr error
	saves    int
	clears   int
}

func (s *fakeStore) Load(context.Context) (GameState, error) {
	if s.loadErr != nil {
		return GameState{}, s.loadErr
	}
	if !s.has {
		return GameState{}, ErrSnapshotNotFound
	}
	return s.state.Clone(), nil
}

func (s *fakeStore) Save(_ context.Context, state GameState) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.state = state.Clone()
	s.has = true
	return nil
}

func (s *fakeStore) Clear(context.Context) error {
	if s.clearErr != nil {
		return s.clearErr
	}
	s.clears++
	s.state = GameState{}
	s.has = false
	return nil
}
