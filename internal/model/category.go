package model

import "fmt"

// Category is the machine key of a spending category. The key is what
// gets persisted; the human-readable label comes from Label and must
// never leak into stored data.
type Category string

const (
	Groceries             Category = "GROCERIES"
	DiningEntertainment   Category = "DINING_ENTERTAINMENT"
	Utilities             Category = "UTILITIES"
	Taxes                 Category = "TAXES"
	Salary                Category = "SALARY"
	Housing               Category = "HOUSING"
	Transportation        Category = "TRANSPORTATION"
	HealthWellness        Category = "HEALTH_WELLNESS"
	OnlineShopping        Category = "ONLINE_SHOPPING"
	Travel                Category = "TRAVEL"
	EducationProfessional Category = "EDUCATION_PROFESSIONAL"
	PersonalCare          Category = "PERSONAL_CARE"
	InvestmentSavings     Category = "INVESTMENT_SAVINGS"
	CharityDonations      Category = "CHARITY_DONATIONS"
	LoansDebt             Category = "LOANS_DEBT"
	BetweenAccounts       Category = "BETWEEN_ACCOUNTS"
	MiscellaneousOther    Category = "MISCELLANEOUS_OTHER"
)

// AllCategories lists every category in presentation order.
var AllCategories = []Category{
	Groceries,
	DiningEntertainment,
	Utilities,
	Taxes,
	Salary,
	Housing,
	Transportation,
	HealthWellness,
	OnlineShopping,
	Travel,
	EducationProfessional,
	PersonalCare,
	InvestmentSavings,
	CharityDonations,
	LoansDebt,
	BetweenAccounts,
	MiscellaneousOther,
}

var categoryLabels = map[Category]string{
	Groceries:             "Groceries",
	DiningEntertainment:   "Dining & Entertainment",
	Utilities:             "Utilities like Electricity, Gas, Water, Internet, Phone",
	Taxes:                 "Taxes / Government Fees",
	Salary:                "Salary",
	Housing:               "Housing",
	Transportation:        "Transportation",
	HealthWellness:        "Health & Wellness",
	OnlineShopping:        "Online Shopping",
	Travel:                "Travel",
	EducationProfessional: "Education & Professional Services",
	PersonalCare:          "Personal Care",
	InvestmentSavings:     "Investment & Savings",
	CharityDonations:      "Charity & Donations",
	LoansDebt:             "Loans & Debt Payments",
	BetweenAccounts:       "Between Accounts",
	MiscellaneousOther:    "Miscellaneous & Other",
}

// Label returns the human-readable name for display.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is one of the defined category keys.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory converts a stored key back into a Category.
func ParseCategory(key string) (Category, error) {
	c := Category(key)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category key %q", key)
	}
	return c, nil
}
