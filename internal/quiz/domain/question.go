package domain

// Question bank bounds. Weeks partition each bank; a week holds at most
// BankCapacity questions.
const (
	MinWeek      = 1
	MaxWeek      = 52
	BankCapacity = 10
)

// BankVariant names a question pool and fixes its answer arity.
type BankVariant struct {
	Name         string
	WrongAnswers int
}

// The two shipped banks: the full news quiz carries three wrong answers
// per question, the short article quiz two.
var (
	BankNews    = BankVariant{Name: "news", WrongAnswers: 3}
	BankArticle = BankVariant{Name: "article", WrongAnswers: 2}
)

// Variants lists all known banks.
func Variants() []BankVariant {
	return []BankVariant{BankNews, BankArticle}
}

// VariantByName resolves a bank variant from its wire name.
func VariantByName(name string) (BankVariant, bool) {
	for _, v := range Variants() {
		if v.Name == name {
			return v, true
		}
	}
	return BankVariant{}, false
}

// Question is one entry in a bank. WrongAnswers preserves input order;
// Correct is the single right answer.
type Question struct {
	Text         string
	WrongAnswers []string
	Correct      string
	Week         int
}

// Answers returns the choices in storage order, correct answer last.
func (q Question) Answers() []string {
	out := make([]string, 0, len(q.WrongAnswers)+1)
	out = append(out, q.WrongAnswers...)
	return append(out, q.Correct)
}
