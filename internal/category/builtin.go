package category

import "github.com/banklens-dev/banklens/internal/model"

// builtinRule is one curated merchant-keyword rule.
type builtinRule struct {
	Pattern  string
	Category model.Category
}

// builtinRules is the curated keyword table merged under every user
// rule file. Order matters: earlier rules win when several match the
// same description. The pattern strings are exact contracts with
// merchant naming on French statements.
var builtinRules = []builtinRule{
	// GROCERIES
	{"Lidl", model.Groceries},
	{"Aldi", model.Groceries},
	{"Carrefour", model.Groceries},
	{"Leclerc", model.Groceries},
	{"Auchan", model.Groceries},
	{"Monoprix", model.Groceries},
	{"Casino", model.Groceries},
	{"Franprix", model.Groceries},

	// DINING_ENTERTAINMENT
	{"McDonald's", model.DiningEntertainment},
	{"KFC", model.DiningEntertainment},
	{"Quick", model.DiningEntertainment},
	{"Pizza Hut", model.DiningEntertainment},
	{"Starbucks", model.DiningEntertainment},
	{"Café de Flore", model.DiningEntertainment},
	{"Ladurée", model.DiningEntertainment},

	// UTILITIES
	{"EDF", model.Utilities},
	{"Engie", model.Utilities},
	{"Veolia", model.Utilities},
	{"SFR", model.Utilities},
	{"Orange", model.Utilities},
	{"Bouygues Telecom", model.Utilities},

	// HOUSING
	{"Airbnb", model.Housing},
	{"Foncia", model.Housing},
	{"Orpi", model.Housing},
	{"Century 21", model.Housing},

	// TRANSPORTATION
	{"SNCF", model.Transportation},
	{"Uber", model.Transportation},
	{"RATP", model.Transportation},
	{"Blablacar", model.Transportation},
	{"Total", model.Transportation},

	// HEALTH_WELLNESS
	{"Pharmacie", model.HealthWellness},
	{"Doctolib", model.HealthWellness},
	{"Pharmacie Lafayette", model.HealthWellness},
	{"Fitness Park", model.HealthWellness},

	// ONLINE_SHOPPING
	{"Amazon", model.OnlineShopping},
	{"Cdiscount", model.OnlineShopping},
	{"Fnac", model.OnlineShopping},
	{"Veepee", model.OnlineShopping},

	// TRAVEL
	{"Air France", model.Travel},
	{"Hertz", model.Travel},
	{"Booking.com", model.Travel},
	{"Expedia", model.Travel},

	// EDUCATION_PROFESSIONAL
	{"Udemy", model.EducationProfessional},
	{"Coursera", model.EducationProfessional},
	{"Acadomia", model.EducationProfessional},

	// PERSONAL_CARE
	{"Sephora", model.PersonalCare},
	{"Yves Rocher", model.PersonalCare},
	{"L'Occitane", model.PersonalCare},
	{"Marionnaud", model.PersonalCare},

	// INVESTMENT_SAVINGS
	{"BNP Paribas", model.InvestmentSavings},
	{"Société Générale", model.InvestmentSavings},
	{"Boursorama", model.InvestmentSavings},

	// CHARITY_DONATIONS
	{"Secours Populaire", model.CharityDonations},
	{"Croix-Rouge", model.CharityDonations},
	{"UNICEF", model.CharityDonations},

	// LOANS_DEBT
	{"Crédit Agricole", model.LoansDebt},
	{"Crédit Mutuel", model.LoansDebt},

	// MISCELLANEOUS_OTHER
	{"Tabac", model.MiscellaneousOther},
	{"PMU", model.MiscellaneousOther},
}
