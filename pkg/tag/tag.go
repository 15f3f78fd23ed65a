package tag

type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Tag labels an income or expense by payer/payee. Counter tracks how many
// transactions reference the tag.
type Tag struct {
	ID      string
	Name    string
	Type    Type
	Counter int
}
