package core

// MaxCategories bounds the number of buckets per transaction type.
const MaxCategories = 12

// Category is a canonical bucket with the color used to draw it.
type Category struct {
	Name  string
	Color string
}

var incomePalette = []string{
	"#3B82F6",
	"#F59E0B",
	"#10B981",
	"#EF4444",
	"#8B5CF6",
	"#06B6D4",
	"#F97316",
	"#14B8A6",
	"#84CC16",
	"#EC4899",
}

var expensePalette = []string{
	"#B91C1C",
	"#DC2626",
	"#B45309",
	"#EA580C",
	"#BE123C",
	"#7C2D12",
	"#1E40AF",
	"#3730A3",
	"#581C87",
	"#991B1B",
	"#047857",
}

var (
	incomeCategories = withPalette(incomePalette,
		"Business", "Investments", "Bonus", "Deposits", "Lottery",
		"Gifts", "Salary", "Savings", "Rental income", "Freelance",
	)
	expenseCategories = withPalette(expensePalette,
		"Bills", "Car", "Clothes", "Travel", "Groceries", "Shopping",
		"House", "Entertainment", "Phone", "Pets", "Transport", "Other",
	)
)

// withPalette assigns colors by index. The palette wraps when it is shorter
// than the category list.
func withPalette(palette []string, names ...string) []Category {
	out := make([]Category, len(names))
	for i, n := range names {
		out[i] = Category{Name: n, Color: palette[i%len(palette)]}
	}
	return out
}

// CategoriesFor returns a copy of the canonical, ordered category list for t.
func CategoriesFor(t TransactionType) []Category {
	switch t {
	case Income:
		return append([]Category(nil), incomeCategories...)
	case Expense:
		return append([]Category(nil), expenseCategories...)
	default:
		return nil
	}
}

// IsCategory reports whether name is a canonical category of t.
func IsCategory(t TransactionType, name string) bool {
	var list []Category
	switch t {
	case Income:
		list = incomeCategories
	case Expense:
		list = expenseCategories
	}
	for _, c := range list {
		if c.Name == name {
			return true
		}
	}
	return false
}
