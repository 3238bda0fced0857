package quiz

// OptionsPerQuestion is the number of answer options every question carries.
const OptionsPerQuestion = 4

// Question is a single multiple-choice record from the question pool.
type Question struct {
	ID          int      `json:"id"`
	Text        string   `json:"question"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"` // 0-based index into Options
	Explanation string   `json:"explanation"`
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.Answer < 0 || q.Answer >= len(q.Options) {
		return ""
	}
	return q.Options[q.Answer]
}

// IsCorrect reports whether option is the correct index.
func (q Question) IsCorrect(option int) bool {
	return option == q.Answer
}

// clone returns a copy that does not share the Options backing array.
func (q Question) clone() Question {
	opts := make([]string, len(q.Options))
	copy(opts, q.Options)
	q.Options = opts
	return q
}
