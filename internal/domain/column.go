package domain

import (
	"errors"
	"fmt"
)

// Column is a header name of the project-tracking sheet. The required
// names are matched verbatim, including the double spaces some of them
// carry.
type Column string

const (
	ColProjectTitle     Column = "Titre du Projet"
	ColTask             Column = "Tâche"
	ColSubTask          Column = "Sous-tâche"
	ColBudget           Column = "Budget (Ariary)"
	ColOwner            Column = "Responsable"
	ColPlannedStart     Column = "Date Début Prévu"
	ColPlannedEnd       Column = "Date Fin Prévu"
	ColStatus           Column = "Statut"
	ColProgress         Column = "Avancement (%)"
	ColEstimatedDays    Column = "Durée estimée (jours)"
	ColRealDays         Column = "Durée réel (Jours)"
	ColConsumedBudget   Column = "Budget Consommé  (Ariary)"
	ColBudgetVariance   Column = "Écart Budgétaire  (Ariary)"
	ColBudgetConsumePct Column = "% de Consommation Budgétaire"
	ColComment          Column = "Commentaires"
)

// ColumnKind is the semantic type of a column's cells.
type ColumnKind string

const (
	KindTextColumn    ColumnKind = "text"
	KindNumericColumn ColumnKind = "numeric"
	KindDateColumn    ColumnKind = "date"
)

// RequiredColumns lists every column a sheet must carry, in diagnostic order.
var RequiredColumns = []Column{
	ColProjectTitle,
	ColTask,
	ColSubTask,
	ColBudget,
	ColOwner,
	ColPlannedStart,
	ColPlannedEnd,
	ColStatus,
	ColProgress,
	ColEstimatedDays,
	ColRealDays,
	ColConsumedBudget,
	ColBudgetVariance,
	ColBudgetConsumePct,
	ColComment,
}

var columnKinds = map[Column]ColumnKind{
	ColProjectTitle:     KindTextColumn,
	ColTask:             KindTextColumn,
	ColSubTask:          KindTextColumn,
	ColBudget:           KindNumericColumn,
	ColOwner:            KindTextColumn,
	ColPlannedStart:     KindDateColumn,
	ColPlannedEnd:       KindDateColumn,
	ColStatus:           KindTextColumn,
	ColProgress:         KindNumericColumn,
	ColEstimatedDays:    KindNumericColumn,
	ColRealDays:         KindNumericColumn,
	ColConsumedBudget:   KindNumericColumn,
	ColBudgetVariance:   KindNumericColumn,
	ColBudgetConsumePct: KindNumericColumn,
	ColComment:          KindTextColumn,
}

var (
	ErrUnknownColumn    = errors.New("unknown column")
	ErrNonNumericColumn = errors.New("column is not numeric")
)

// Kind returns the semantic kind of a known column. Unknown columns are text.
func (c Column) Kind() ColumnKind {
	if k, ok := columnKinds[c]; ok {
		return k
	}
	return KindTextColumn
}

// IsNumeric reports whether the column holds numbers after normalization.
func (c Column) IsNumeric() bool { return c.Kind() == KindNumericColumn }

// IsDate reports whether the column holds dates after normalization.
func (c Column) IsDate() bool { return c.Kind() == KindDateColumn }

// IsKnown reports whether c is one of the required columns.
func (c Column) IsKnown() bool {
	_, ok := columnKinds[c]
	return ok
}

// NumericColumns returns the required columns of numeric kind, in order.
func NumericColumns() []Column {
	return columnsOfKind(KindNumericColumn)
}

// DateColumns returns the required columns of date kind, in order.
func DateColumns() []Column {
	return columnsOfKind(KindDateColumn)
}

func columnsOfKind(kind ColumnKind) []Column {
	var out []Column
	for _, c := range RequiredColumns {
		if columnKinds[c] == kind {
			out = append(out, c)
		}
	}
	return out
}

// LookupColumn resolves a user-supplied header name against the catalog.
func LookupColumn(name string) (Column, error) {
	c := Column(name)
	if !c.IsKnown() {
		return "", fmt.Errorf("%w %q", ErrUnknownColumn, name)
	}
	return c, nil
}

// LookupNumericColumn resolves name and requires a numeric column.
func LookupNumericColumn(name string) (Column, error) {
	c, err := LookupColumn(name)
	if err != nil {
		return "", err
	}
	if !c.IsNumeric() {
		return "", fmt.Errorf("%w: %q", ErrNonNumericColumn, name)
	}
	return c, nil
}
