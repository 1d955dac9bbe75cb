// Package reconcile звіряє табель обліку з даними ЖБД: визначає очікуваний
// код виплати для кожної людини на кожен день та порівнює його з фактичним.
package reconcile

import (
	"sort"
	"time"

	"zbdcheck/importer"
	"zbdcheck/zbd"
)

// Resolve визначає код виплати, який має стояти у табелі для людини на дату
// day, за її записами у ЖБД. Повертає ("", false), якщо виплата на цю дату
// не очікується.
//
// Порядок правил фіксований:
//  1. обстріл у цей день — перемагає будь-який відкритий інтервал;
//  2. одноденне чергування штурманом у цей день;
//  3. інтервали прибуття/вибуття у порядку запису в ЖБД, перший збіг виграє.
//
// Для інтервалів відновлюються відсутні половини переходів: "вибув" без
// прибуття отримує старт з останнього прибуття на ту ж позицію, "прибув" без
// вибуття обрізається найближчим вибуттям з тієї ж позиції. Усі інтервали
// обмежуються календарними межами звітного місяця.
func Resolve(records []zbd.EventRecord, day time.Time, period zbd.Period, positions *importer.PositionConfig) (string, bool) {
	arrivals, departures := datesByPosition(records)

	// Пріоритетний прохід: обстріл, потім штурман. Це точкові факти
	// конкретного дня, їх не можна затінити відкритим інтервалом позиції.
	for _, kind := range []zbd.EventKind{zbd.KindShelling, zbd.KindNavigator} {
		for _, record := range records {
			if record.Kind != kind {
				continue
			}
			eventDay := record.EventDate()
			if eventDay != nil && eventDay.Equal(day) {
				return positions.Lookup(record.Position)
			}
		}
	}

	for _, record := range records {
		if record.Kind == zbd.KindShelling || record.Kind == zbd.KindNavigator {
			continue
		}

		start := period.FirstDay()
		if record.Arrival != nil {
			start = *record.Arrival
		}
		end := period.LastDay()
		if record.Departure != nil {
			end = *record.Departure
		}

		// "Прибув" без вибуття: інтервал обрізається найближчим наступним
		// вибуттям з тієї ж позиції.
		if record.Kind == zbd.KindArrived && record.Arrival != nil {
			if departure, ok := earliestNotBefore(departures[record.Position], *record.Arrival); ok && departure.Before(end) {
				end = departure
			}
		}

		// "Вибув" без прибуття: стартом стає останнє прибуття на ту ж позицію,
		// якщо воно було; інакше — початок місяця.
		if record.Kind == zbd.KindDeparted && record.Arrival == nil && record.Departure != nil {
			if arrival, ok := latestNotAfter(arrivals[record.Position], *record.Departure); ok {
				start = arrival
			}
		}

		if start.Before(period.FirstDay()) {
			start = period.FirstDay()
		}
		if end.After(period.LastDay()) {
			end = period.LastDay()
		}

		if !day.Before(start) && !day.After(end) {
			return positions.Lookup(record.Position)
		}
	}

	return "", false
}

// datesByPosition збирає відсортовані дати прибуттів та вибуттів по позиціях —
// матеріал для відновлення неповних інтервалів.
func datesByPosition(records []zbd.EventRecord) (arrivals, departures map[string][]time.Time) {
	arrivals = make(map[string][]time.Time)
	departures = make(map[string][]time.Time)

	for _, record := range records {
		switch record.Kind {
		case zbd.KindArrived:
			if record.Arrival != nil {
				arrivals[record.Position] = append(arrivals[record.Position], *record.Arrival)
			}
		case zbd.KindDeparted:
			if record.Departure != nil {
				departures[record.Position] = append(departures[record.Position], *record.Departure)
			}
		}
	}

	for _, dates := range arrivals {
		sortDates(dates)
	}
	for _, dates := range departures {
		sortDates(dates)
	}
	return arrivals, departures
}

func sortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
}

func earliestNotBefore(dates []time.Time, bound time.Time) (time.Time, bool) {
	for _, d := range dates {
		if !d.Before(bound) {
			return d, true
		}
	}
	return time.Time{}, false
}

func latestNotAfter(dates []time.Time, bound time.Time) (time.Time, bool) {
	var (
		best  time.Time
		found bool
	)
	for _, d := range dates {
		if !d.After(bound) {
			best = d
			found = true
		}
	}
	return best, found
}
