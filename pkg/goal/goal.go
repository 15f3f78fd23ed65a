package goal

import (
	"github.com/finbook/finbook/internal/money"
	"github.com/finbook/finbook/internal/utils"
)

type Type string

const (
	TypeMonthly Type = "monthly"
	TypeYearly  Type = "yearly"
)

func (t Type) Valid() bool {
	return t == TypeMonthly || t == TypeYearly
}

type Goal struct {
	ID           string
	Name         string
	Type         Type
	TargetAmount money.Cents
	Section      string
	MonthFrom    utils.MonthKey
	MonthTo      utils.MonthKey
	IsDone       bool

	// Actual is attached at read time for monthly goals, ProgressYTD for
	// yearly ones. Neither is persisted.
	Actual      money.Cents
	ProgressYTD money.Cents
}
