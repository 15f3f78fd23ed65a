package goal

import "context"

type StubGoalRepo struct {
	data map[string]Goal
}

func NewStubGoalRepo() *StubGoalRepo {
	return &StubGoalRepo{data: map[string]Goal{}}
}

func (s *StubGoalRepo) Store(ctx context.Context, userId int, goal Goal) error {
	s.data[goal.ID] = goal
	return nil
}

func (s *StubGoalRepo) GetAll(ctx context.Context, userId int, section string) ([]Goal, error) {
	var goals []Goal
	for _, goal := range s.data {
		if section == "" || goal.Section == section {
			goals = append(goals, goal)
		}
	}
	return goals, nil
}

func (s *StubGoalRepo) FindById(ctx context.Context, userId int, id string) (Goal, error) {
	goal, ok := s.data[id]
	if !ok {
		return Goal{}, ErrNotFound
	}
	return goal, nil
}

func (s *StubGoalRepo) Update(ctx context.Context, userId int, goal Goal) (bool, error) {
	if _, ok := s.data[goal.ID]; !ok {
		return false, nil
	}
	s.data[goal.ID] = goal
	return true, nil
}

func (s *StubGoalRepo) Cleanup() {
	s.data = map[string]Goal{}
}
