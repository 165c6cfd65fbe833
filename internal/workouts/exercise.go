package workouts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrDuplicateExercise = errors.New("exercise with that name already exists")
	ErrExerciseInUse     = errors.New("exercise is used by workout sessions")
	ErrInvalidExercise   = errors.New("invalid exercise")
)

const (
	DefaultExerciseType       = "strength"
	DefaultExerciseDifficulty = 1
)

type Exercise struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	MuscleGroup string `json:"muscleGroup"`
	Equipment   string `json:"equipment,omitempty"`
	Difficulty  int    `json:"difficulty"`
	Description string `json:"description,omitempty"`
	DemoLink    string `json:"demoLink,omitempty"`
}

// Normalize trims the text fields and fills in the defaults for type and
// difficulty.
func (e *Exercise) Normalize() {
	e.Name = strings.TrimSpace(e.Name)
	e.MuscleGroup = strings.ToLower(strings.TrimSpace(e.MuscleGroup))
	e.Type = strings.ToLower(strings.TrimSpace(e.Type))
	if e.Type == "" {
		e.Type = DefaultExerciseType
	}
	if e.Difficulty == 0 {
		e.Difficulty = DefaultExerciseDifficulty
	}
}

func (e *Exercise) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("%w: name empty", ErrInvalidExercise)
	}
	if e.MuscleGroup == "" {
		return fmt.Errorf("%w: muscle group empty", ErrInvalidExercise)
	}
	if e.Difficulty < 1 || e.Difficulty > 5 {
		return fmt.Errorf("%w: difficulty %d not in 1..5", ErrInvalidExercise, e.Difficulty)
	}
	return nil
}

type ExerciseFilter struct {
	MuscleGroup string
	Type        string
}
