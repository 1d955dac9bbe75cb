package reconcile

import (
	"fmt"
	"time"
)

// sentinelCodes коди, для яких перевірка не виконується взагалі:
// "Р" (резерв) та "ЗВР".
var sentinelCodes = []string{"Р", "ЗВР"}

// mustExplainCodes коди у табелі, які вимагають підтвердження у ЖБД. Решта
// кодів без очікування вважається доброякісною (відпустки, лікарняні тощо
// ЖБД не фіксує).
var mustExplainCodes = []string{"Б", "Н"}

// VerdictKind підсумок перевірки однієї комірки.
type VerdictKind int

const (
	// VerdictSkip очікується сторожовий код — комірка не перевіряється.
	VerdictSkip VerdictKind = iota
	// VerdictMatch очікуване та фактичне значення збігаються.
	VerdictMatch
	// VerdictNeutral розбіжності немає з точки зору перевірки (немає
	// очікування, а фактичний код — доброякісний або відсутній).
	VerdictNeutral
	// VerdictMismatch очікуване та фактичне значення розходяться.
	VerdictMismatch
)

// CellVerdict вердикт по одній комірці табеля.
type CellVerdict struct {
	Kind     VerdictKind
	Expected string // нормалізований очікуваний код; "" — виплати не очікується
	Actual   string // нормалізований фактичний код; "" — комірка порожня
	Message  string // діагностика для VerdictMismatch
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// Judge порівнює нормалізовані очікуване та фактичне значення комірки.
// Сирі значення потрібні лише для діагностики: якщо нормалізація дала
// порожнечу, у повідомлення потрапляє сире значення.
func Judge(person string, day time.Time, expected, expectedRaw, actual, actualRaw string) CellVerdict {
	if contains(sentinelCodes, expected) {
		return CellVerdict{Kind: VerdictSkip, Expected: expected, Actual: actual}
	}

	if expected == actual {
		return CellVerdict{Kind: VerdictMatch, Expected: expected, Actual: actual}
	}

	if expected == "" {
		// Очікування немає. Порожня комірка, сторожовий код або будь-який код
		// поза списком обов'язкових до пояснення — не розбіжність.
		if actual == "" || contains(sentinelCodes, actual) || !contains(mustExplainCodes, actual) {
			return CellVerdict{Kind: VerdictNeutral, Expected: expected, Actual: actual}
		}
	}

	expectedShown := expected
	if expectedShown == "" {
		expectedShown = expectedRaw
	}
	actualShown := actual
	if actualShown == "" {
		actualShown = actualRaw
	}

	return CellVerdict{
		Kind:     VerdictMismatch,
		Expected: expected,
		Actual:   actual,
		Message: fmt.Sprintf("%s, дата %s: очікувалось '%s', знайдено '%s'",
			person, day.Format("2006-01-02"), expectedShown, actualShown),
	}
}
