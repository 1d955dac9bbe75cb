package zbd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"zbdcheck/docx"
	"zbdcheck/importer"
)

// Маркери блоків у тексті ЖБД. "водій:" блоку не відкриває, але завершує
// збір імен попереднього блоку.
var blockMarkers = []struct {
	marker string
	kind   EventKind
}{
	{"перебували:", KindShelling},
	{"прибули:", KindArrived},
	{"вибули:", KindDeparted},
	{"штурман:", KindNavigator},
}

var blockTerminators = []string{"прибули:", "вибули:", "водій:", "штурман:"}

// minNameLength коротші рядки не вважаються ПІБ (обрізки форматування, тире).
const minNameLength = 5

// NamedEvent подія разом з ПІБ, до якого вона прив'язана.
type NamedEvent struct {
	Name   string
	Record EventRecord
}

// Extractor розбирає таблиці ЖБД у події журналу. Позиції розпізнаються
// виключно по довіднику виплат: текст, якого немає у довіднику, позицією
// стати не може.
type Extractor struct {
	positions *importer.PositionConfig
	journal   *Journal
}

// NewExtractor створює екстрактор, що наповнює переданий журнал.
func NewExtractor(positions *importer.PositionConfig, journal *Journal) *Extractor {
	return &Extractor{positions: positions, journal: journal}
}

// ParseFile читає один Word файл ЖБД. Помилка відкриття/розбору повертається
// нагору, де вона фіксується у списку помилок прогону — один зіпсований файл
// не зупиняє перевірку решти.
func (e *Extractor) ParseFile(path string) (int, error) {
	if month, ok := MonthFromFilename(filepath.Base(path)); ok {
		e.journal.SetPeriodOnce(time.Now().Year(), month)
	}

	tables, err := docx.ExtractTables(path)
	if err != nil {
		return 0, fmt.Errorf("помилка читання Word файлу %s: %w", filepath.Base(path), err)
	}

	found := 0
	for _, table := range tables {
		found += e.ParseDayTable(table)
	}
	return found, nil
}

// ParseDayTable розбирає одну таблицю-день. Дата дня береться з рядка 2,
// колонки 0 (формат 01.09.2025); таблиця без дати пропускається.
// Повертає кількість знайдених записів про людей.
func (e *Extractor) ParseDayTable(table docx.Table) int {
	eventDate, ok := ParseDate(table.CellText(2, 0))
	if !ok {
		return 0
	}
	e.journal.SetPeriodOnce(eventDate.Year(), eventDate.Month())

	found := 0
	currentPosition := ""

	for _, row := range table.Rows {
		if len(row) < 2 {
			continue
		}

		// Колонка "Завдання військ..." — вільний текст з маркерами блоків.
		cellText := strings.TrimSpace(row[1])
		if cellText == "" {
			continue
		}

		if position, ok := e.positions.MatchPosition(cellText); ok {
			currentPosition = position
			// Без continue: блок прибули:/вибули: часто починається у тому ж рядку.
		}

		if currentPosition == "" {
			continue
		}

		lower := strings.ToLower(cellText)
		for _, block := range blockMarkers {
			if !strings.Contains(lower, block.marker) {
				continue
			}
			events := ExtractEvents(cellText, eventDate, currentPosition, block.kind)
			for _, event := range events {
				e.journal.Add(event.Name, event.Record)
			}
			found += len(events)
		}
	}

	return found
}

// ExtractEvents розбирає текст комірки для одного блоку. Явний кінцевий
// автомат: стан "шукаємо маркер" → стан "збираємо імена" до наступного
// маркера. Текст після двокрапки у рядку з маркером — перше ім'я блоку
// (у документах перший ПІБ нерідко пишуть одразу за маркером).
func ExtractEvents(cellText string, eventDate time.Time, position string, kind EventKind) []NamedEvent {
	marker := markerFor(kind)

	var events []NamedEvent
	collecting := false

	appendName := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" {
			return
		}

		lower := strings.ToLower(line)
		// Службові фрази журналу, а не ПІБ.
		if strings.Contains(lower, "проведено") || strings.Contains(lower, "ротац") {
			return
		}
		if utf8.RuneCountInString(line) < minNameLength {
			return
		}

		events = append(events, NamedEvent{
			Name:   line,
			Record: newRecord(position, kind, eventDate),
		})
	}

	for _, line := range strings.Split(cellText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)

		if idx := strings.Index(lower, marker); idx >= 0 {
			collecting = true
			// Хвіст рядка після маркера — перший рядок тіла блоку.
			appendName(line[idx+len(marker):])
			continue
		}

		if !collecting {
			continue
		}

		if containsAnyMarker(lower) {
			break
		}

		appendName(line)
	}

	return events
}

func markerFor(kind EventKind) string {
	for _, block := range blockMarkers {
		if block.kind == kind {
			return block.marker
		}
	}
	return ""
}

func containsAnyMarker(lower string) bool {
	for _, marker := range blockTerminators {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func newRecord(position string, kind EventKind, eventDate time.Time) EventRecord {
	record := EventRecord{Position: position, Kind: kind}
	day := eventDate

	switch kind {
	case KindShelling, KindNavigator:
		// Одноденна подія: обидві дати — день події.
		record.Arrival = &day
		record.Departure = &day
	case KindArrived:
		record.Arrival = &day
	case KindDeparted:
		record.Departure = &day
	}

	return record
}
