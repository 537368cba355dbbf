package repositories

// ExerciseDbRepository gathers the query methods against the exercise
// database. It is stateless: every method receives the Executor (pool or
// transaction) it must run on.
type ExerciseDbRepository struct{}

func NewExerciseDbRepository() *ExerciseDbRepository {
	return &ExerciseDbRepository{}
}
