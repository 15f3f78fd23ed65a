package tag

import "context"

type StubTagRepo struct {
	data map[string]Tag
}

func NewStubTagRepo() *StubTagRepo {
	return &StubTagRepo{data: map[string]Tag{}}
}

func (s *StubTagRepo) Store(ctx context.Context, userId int, tag Tag) error {
	s.data[tag.ID] = tag
	return nil
}

func (s *StubTagRepo) GetByType(ctx context.Context, userId int, tagType Type) ([]Tag, error) {
	var tags []Tag
	for _, tag := range s.data {
		if tag.Type == tagType {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (s *StubTagRepo) FindByName(ctx context.Context, userId int, name string, tagType Type) (Tag, error) {
	for _, tag := range s.data {
		if tag.Name == name && tag.Type == tagType {
			return tag, nil
		}
	}
	return Tag{}, ErrNotFound
}

func (s *StubTagRepo) Update(ctx context.Context, userId int, tag Tag) (bool, error) {
	existing, ok := s.data[tag.ID]
	if !ok {
		return false, nil
	}
	existing.Name = tag.Name
	s.data[tag.ID] = existing
	return true, nil
}

func (s *StubTagRepo) Delete(ctx context.Context, userId int, id string) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubTagRepo) IncrementCounter(ctx context.Context, id string) error {
	if tag, ok := s.data[id]; ok {
		tag.Counter++
		s.data[id] = tag
	}
	return nil
}

func (s *StubTagRepo) Cleanup() {
	s.data = map[string]Tag{}
}
