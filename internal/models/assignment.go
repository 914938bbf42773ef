package models

// AssignmentLevel is the difficulty of an assignment.
type AssignmentLevel string

const (
	LevelEasy   AssignmentLevel = "easy"
	LevelMedium AssignmentLevel = "medium"
	LevelHard   AssignmentLevel = "hard"
)

// LevelField is the document key holding the difficulty.
const LevelField = "level"

// DifficultyAll disables the level predicate when listing.
const DifficultyAll = "All"

// AssignmentFilter captures listing criteria for assignments.
type AssignmentFilter struct {
	Difficulty string
	Page       int
	PageSize   int
}

// AllLevels reports whether the filter matches every difficulty.
func (f AssignmentFilter) AllLevels() bool {
	return f.Difficulty == "" || equalFold(f.Difficulty, DifficultyAll)
}

// Skip returns the number of records to skip for the requested page.
func (f AssignmentFilter) Skip() int64 {
	if f.Page <= 0 || f.PageSize <= 0 {
		return 0
	}
	return int64(f.Page) * int64(f.PageSize)
}

// AssignmentCount is returned by the estimated count endpoint.
type AssignmentCount struct {
	Count int64 `json:"count"`
}
