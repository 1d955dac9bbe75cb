package zbd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zbdcheck/docx"
	"zbdcheck/importer"
)

var day3 = time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)

func testPositions() *importer.PositionConfig {
	return importer.NewPositionConfig(map[string]string{
		"РВП":            "Б",
		"ВП \"Маріо-1\"": "Б",
		"обстріл":        "Н",
	})
}

func names(events []NamedEvent) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Name)
	}
	return out
}

func TestExtractEvents_ArrivedBlock(t *testing.T) {
	cell := "Проведено ротацію о/с РВП\nприбули:\nсолдат Іванов Іван\nсержант Коваль Василь"

	events := ExtractEvents(cell, day3, "РВП", KindArrived)

	require.Len(t, events, 2)
	assert.Equal(t, []string{"солдат Іванов Іван", "сержант Коваль Василь"}, names(events))
	for _, e := range events {
		assert.Equal(t, "РВП", e.Record.Position)
		assert.Equal(t, KindArrived, e.Record.Kind)
		require.NotNil(t, e.Record.Arrival)
		assert.True(t, e.Record.Arrival.Equal(day3))
		assert.Nil(t, e.Record.Departure)
	}
}

func TestExtractEvents_InlineFirstName(t *testing.T) {
	// Перший ПІБ записано одразу після маркера — він не губиться.
	cell := "прибули: солдат Іванов Іван\nсержант Коваль Василь"

	events := ExtractEvents(cell, day3, "РВП", KindArrived)

	require.Len(t, events, 2)
	assert.Equal(t, "солдат Іванов Іван", events[0].Name)
}

func TestExtractEvents_StopsAtNextMarker(t *testing.T) {
	cell := "прибули:\nсолдат Іванов Іван\nвибули:\nсержант Коваль Василь"

	arrived := ExtractEvents(cell, day3, "РВП", KindArrived)
	departed := ExtractEvents(cell, day3, "РВП", KindDeparted)

	require.Len(t, arrived, 1)
	assert.Equal(t, "солдат Іванов Іван", arrived[0].Name)

	require.Len(t, departed, 1)
	assert.Equal(t, "сержант Коваль Василь", departed[0].Name)
	require.NotNil(t, departed[0].Record.Departure)
	assert.Nil(t, departed[0].Record.Arrival)
}

func TestExtractEvents_DriverMarkerTerminates(t *testing.T) {
	cell := "штурман:\nсолдат Іванов Іван\nводій:\nсержант Коваль Василь"

	events := ExtractEvents(cell, day3, "РВП", KindNavigator)

	// "водій:" блоку не відкриває, але завершує збір.
	require.Len(t, events, 1)
	assert.Equal(t, "солдат Іванов Іван", events[0].Name)
	require.NotNil(t, events[0].Record.Arrival)
	require.NotNil(t, events[0].Record.Departure)
	assert.True(t, events[0].Record.Arrival.Equal(*events[0].Record.Departure))
}

func TestExtractEvents_FiltersServiceLinesAndShortLines(t *testing.T) {
	cell := "прибули:\nпроведено ротацію\nротація о/с\n--\nсолдат Іванов Іван"

	events := ExtractEvents(cell, day3, "РВП", KindArrived)

	require.Len(t, events, 1)
	assert.Equal(t, "солдат Іванов Іван", events[0].Name)
}

func TestExtractEvents_ShellingIsOneDay(t *testing.T) {
	cell := "в результаті обстрілу на позиції перебували:\nсолдат Іванов Іван"

	events := ExtractEvents(cell, day3, "обстріл", KindShelling)

	require.Len(t, events, 1)
	record := events[0].Record
	assert.Equal(t, KindShelling, record.Kind)
	require.NotNil(t, record.Arrival)
	require.NotNil(t, record.Departure)
	assert.True(t, record.Arrival.Equal(day3))
	assert.True(t, record.Departure.Equal(day3))
}

func TestExtractEvents_NoMarker(t *testing.T) {
	events := ExtractEvents("звичайний текст\nсолдат Іванов Іван", day3, "РВП", KindArrived)
	assert.Empty(t, events)
}

func dayTable(date string, taskCells ...string) docx.Table {
	rows := [][]string{
		{"1", "2", "3"},
		{"Дата, час", "Завдання військ (сил)", "Примітка"},
		{date, "", ""},
	}
	for _, cell := range taskCells {
		rows = append(rows, []string{"", cell, ""})
	}
	return docx.Table{Rows: rows}
}

func TestParseDayTable(t *testing.T) {
	journal := NewJournal()
	extractor := NewExtractor(testPositions(), journal)

	table := dayTable("03.09.2025\n06:00",
		"Проведено ротацію о/с РВП\nприбули:\nсолдат Іванов Іван\nвибули:\nсержант Коваль Василь",
	)

	found := extractor.ParseDayTable(table)
	assert.Equal(t, 2, found)

	require.NotNil(t, journal.Period())
	assert.Equal(t, Period{Year: 2025, Month: time.September}, *journal.Period())

	_, records, ok := journal.Find("солдат Іванов Іван")
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, KindArrived, records[0].Kind)

	_, records, ok = journal.Find("сержант Коваль Василь")
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, KindDeparted, records[0].Kind)
}

func TestParseDayTable_PositionCarriesAcrossRows(t *testing.T) {
	journal := NewJournal()
	extractor := NewExtractor(testPositions(), journal)

	table := dayTable("03.09.2025",
		"Проведено ротацію о/с ВП \"Маріо-1\"",
		"прибули:\nсолдат Іванов Іван",
	)

	found := extractor.ParseDayTable(table)
	require.Equal(t, 1, found)

	_, records, ok := journal.Find("солдат Іванов Іван")
	require.True(t, ok)
	assert.Equal(t, "ВП \"Маріо-1\"", records[0].Position)
}

func TestParseDayTable_SkipsTableWithoutDate(t *testing.T) {
	journal := NewJournal()
	extractor := NewExtractor(testPositions(), journal)

	table := dayTable("немає дати", "прибули:\nсолдат Іванов Іван")

	assert.Equal(t, 0, extractor.ParseDayTable(table))
	assert.Equal(t, 0, journal.Len())
	assert.Nil(t, journal.Period())
}

func TestParseDayTable_NoEventsBeforePositionKnown(t *testing.T) {
	journal := NewJournal()
	extractor := NewExtractor(testPositions(), journal)

	table := dayTable("03.09.2025", "прибули:\nсолдат Іванов Іван")

	assert.Equal(t, 0, extractor.ParseDayTable(table))
	assert.Equal(t, 0, journal.Len())
}

func TestParseFile_RoundTripThroughDocx(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/ЖБД вересень.docx"

	table := dayTable("03.09.2025",
		"Проведено ротацію о/с РВП\nприбули:\nсолдат Іванов Іван",
	)
	require.NoError(t, docx.WriteTables(path, []docx.Table{table}))

	journal := NewJournal()
	extractor := NewExtractor(testPositions(), journal)

	found, err := extractor.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, found)
	assert.Equal(t, 1, journal.Len())

	require.NotNil(t, journal.Period())
	assert.Equal(t, time.September, journal.Period().Month)
}

func TestParseFile_MissingFile(t *testing.T) {
	journal := NewJournal()
	extractor := NewExtractor(testPositions(), journal)

	_, err := extractor.ParseFile(t.TempDir() + "/відсутній.docx")
	assert.Error(t, err)
}
