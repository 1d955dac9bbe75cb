package zbd

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{4})`),
	regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{2})`),
}

// ParseDate шукає дату формату DD.MM.YYYY або DD.MM.YY у будь-якому місці
// рядка (комірки ЖБД містять дату разом з часом та іншим текстом).
// Двоцифровий рік трактується як 20xx. "-" та порожній рядок — дати немає.
func ParseDate(raw string) (time.Time, bool) {
	text := strings.TrimSpace(strings.ReplaceAll(raw, "\n", " "))
	if text == "" || text == "-" {
		return time.Time{}, false
	}

	for _, pattern := range datePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		day, _ := strconv.Atoi(match[1])
		month, _ := strconv.Atoi(match[2])
		year, _ := strconv.Atoi(match[3])
		if year < 100 {
			year += 2000
		}

		if month < 1 || month > 12 || day < 1 {
			continue
		}
		parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date нормалізує 31.02 у березень — таке значення вважаємо сміттям.
		if parsed.Day() != day || parsed.Month() != time.Month(month) {
			continue
		}
		return parsed, true
	}

	return time.Time{}, false
}

// monthNames назви місяців у називному та родовому відмінках — назви файлів
// ЖБД пишуть і так, і так ("ЖБД вересень", "ЖБД за 15 вересня").
var monthNames = map[string]time.Month{
	"січень": time.January, "січня": time.January,
	"лютий": time.February, "лютого": time.February,
	"березень": time.March, "березня": time.March,
	"квітень": time.April, "квітня": time.April,
	"травень": time.May, "травня": time.May,
	"червень": time.June, "червня": time.June,
	"липень": time.July, "липня": time.July,
	"серпень": time.August, "серпня": time.August,
	"вересень": time.September, "вересня": time.September,
	"жовтень": time.October, "жовтня": time.October,
	"листопад": time.November, "листопада": time.November,
	"грудень": time.December, "грудня": time.December,
}

// MonthFromFilename шукає назву місяця у назві файлу (без урахування регістру).
func MonthFromFilename(filename string) (time.Month, bool) {
	lower := strings.ToLower(filename)
	for name, month := range monthNames {
		if strings.Contains(lower, name) {
			return month, true
		}
	}
	return 0, false
}
