package model

// Tables lists every persisted model in dependency order, for migrations and resets.
func Tables() []interface{} {
	return []interface{}{
		&User{},
		&Family{},
		&FamilyMember{},
		&Category{},
		&Expense{},
		&Income{},
		&FutureExpense{},
	}
}
