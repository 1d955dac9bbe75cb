// Package zbd витягує з журналу бойових дій (ЖБД) події прибуття/вибуття
// особового складу по позиціях. Документ ЖБД — це Word файл, у якому кожна
// таблиця відповідає одному календарному дню.
package zbd

import (
	"fmt"
	"time"
)

// EventKind тип події у ЖБД.
type EventKind int

const (
	// KindArrived прибуття на позицію (відома лише дата прибуття).
	KindArrived EventKind = iota
	// KindDeparted вибуття з позиції (відома лише дата вибуття).
	KindDeparted
	// KindShelling перебування на позиції під час обстрілу (одноденна подія).
	KindShelling
	// KindNavigator одноденне чергування штурманом.
	KindNavigator
)

// String повертає назву блоку так, як вона пишеться у ЖБД.
func (k EventKind) String() string {
	switch k {
	case KindArrived:
		return "прибув"
	case KindDeparted:
		return "вибув"
	case KindShelling:
		return "обстріл"
	case KindNavigator:
		return "штурман"
	default:
		return "невідомо"
	}
}

// EventRecord одна подія ЖБД, прив'язана до людини.
// Для одноденних подій (обстріл, штурман) обидві дати однакові; для прибуття
// заповнена лише Arrival, для вибуття — лише Departure.
type EventRecord struct {
	Position  string
	Kind      EventKind
	Arrival   *time.Time
	Departure *time.Time
}

// EventDate дата одноденної події (обстріл/штурман); nil для інших типів
// повертається як є.
func (r EventRecord) EventDate() *time.Time {
	if r.Arrival != nil {
		return r.Arrival
	}
	return r.Departure
}

// Period звітний період (рік + місяць), який обмежує всі інтервали перевірки.
type Period struct {
	Year  int
	Month time.Month
}

// FirstDay перший день місяця.
func (p Period) FirstDay() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// LastDay останній день місяця.
func (p Period) LastDay() time.Time {
	return p.FirstDay().AddDate(0, 1, -1)
}

// Contains чи входить дата у звітний місяць.
func (p Period) Contains(d time.Time) bool {
	return d.Year() == p.Year && d.Month() == p.Month
}

// Day повертає дату вказаного дня звітного місяця.
func (p Period) Day(day int) time.Time {
	return time.Date(p.Year, p.Month, day, 0, 0, 0, 0, time.UTC)
}

// String формат "2025-09" для логів та звітів.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// CurrentPeriod період за сьогоднішньою датою; використовується як останній
// запасний варіант, коли місяць не вдалося визначити ні з назви файлу, ні з дат.
func CurrentPeriod() Period {
	now := time.Now()
	return Period{Year: now.Year(), Month: now.Month()}
}
