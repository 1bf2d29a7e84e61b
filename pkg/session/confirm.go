package session

// Confirmer asks the user a yes/no question. It may block indefinitely.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// StaticConfirmer answers every question the same way and remembers what
// it was asked.
type StaticConfirmer struct {
	Answer    bool
	Questions []string
}

func (s *StaticConfirmer) Confirm(question string) (bool, error) {
	s.Questions = append(s.Questions, question)
	return s.Answer, nil
}
