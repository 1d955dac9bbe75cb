package reconcile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"zbdcheck/docx"
	"zbdcheck/tabel"
)

func silentLog(t *testing.T) *RunLog {
	t.Helper()
	log, err := NewRunLog(filepath.Join(t.TempDir(), "run.log"))
	require.NoError(t, err)
	log.console = devNull(t)
	t.Cleanup(func() { log.Close() })
	return log
}

func devNull(t *testing.T) *os.File {
	t.Helper()
	f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func writeConfigXLSX(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	require.NoError(t, f.SetCellValue(sheet, "B1", "Позиція"))
	require.NoError(t, f.SetCellValue(sheet, "C1", "Виплата"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "РВП"))
	require.NoError(t, f.SetCellValue(sheet, "C2", "Б"))
	require.NoError(t, f.SetCellValue(sheet, "B3", "обстріл"))
	require.NoError(t, f.SetCellValue(sheet, "C3", "Н"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

// writeTabelXLSX створює табель: заголовки днів (номери дня місяця) та
// рядки ПІБ → значення по днях.
func writeTabelXLSX(t *testing.T, dir string, days []int, people map[string]map[int]string, order []string) string {
	t.Helper()
	path := filepath.Join(dir, "tabel.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]

	for i, dayNum := range days {
		cell, err := excelize.CoordinatesToCellName(tabel.FirstDayColumn+i, tabel.HeaderRow)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, dayNum))
	}

	for p, name := range order {
		rowIdx := tabel.FirstPersonRow + p
		cell, err := excelize.CoordinatesToCellName(tabel.NameColumn, rowIdx)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, name))

		for i, dayNum := range days {
			value, ok := people[name][dayNum]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(tabel.FirstDayColumn+i, rowIdx)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func writeZBDDocx(t *testing.T, dir string, cells map[string]string) string {
	t.Helper()
	// Без назви місяця у імені файлу: період має визначитися з дат таблиць,
	// інакше рік був би взятий поточний.
	path := filepath.Join(dir, "жбд.docx")

	var tables []docx.Table
	for date, task := range cells {
		tables = append(tables, docx.Table{Rows: [][]string{
			{"1", "2", "3"},
			{"Дата, час", "Завдання військ (сил)", "Примітка"},
			{date, task, ""},
		}})
	}
	require.NoError(t, docx.WriteTables(path, tables))
	return path
}

func TestChecker_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	zbdFile := writeZBDDocx(t, dir, map[string]string{
		"03.09.2025": "Проведено ротацію о/с РВП\nприбули:\nрядовий Петренко Петро",
		"10.09.2025": "Проведено ротацію о/с РВП\nвибули:\nрядовий Петренко Петро",
	})

	tabelFile := writeTabelXLSX(t, dir, []int{1, 3, 5, 10, 11},
		map[string]map[int]string{
			"рядовий Петренко Петро": {3: "Б", 5: "Б", 10: "Б"},
		},
		[]string{"рядовий Петренко Петро"},
	)

	opts := Options{
		WordFiles:  []string{zbdFile},
		TabelFile:  tabelFile,
		ConfigFile: writeConfigXLSX(t, dir),
		OutputFile: filepath.Join(dir, "result.xlsx"),
	}

	checker := NewChecker(silentLog(t))
	summary, err := checker.Run(opts)
	require.NoError(t, err)

	assert.Equal(t, 2025, summary.Period.Year)
	assert.Equal(t, time.September, summary.Period.Month)
	assert.Equal(t, 1, summary.PeopleChecked)
	assert.Equal(t, 0, summary.PeopleNotFound)
	assert.Empty(t, summary.Errors)
	assert.Empty(t, summary.Mismatches)

	_, err = os.Stat(opts.OutputFile)
	assert.NoError(t, err)
}

func TestChecker_MismatchAndBlank(t *testing.T) {
	dir := t.TempDir()

	zbdFile := writeZBDDocx(t, dir, map[string]string{
		"03.09.2025": "Проведено ротацію о/с РВП\nприбули:\nсолдат Іванов Іван",
		"05.09.2025": "Проведено ротацію о/с РВП\nвибули:\nсолдат Іванов Іван",
	})

	// 4-го записано "Н" замість очікуваного "Б", 5-го порожньо.
	tabelFile := writeTabelXLSX(t, dir, []int{3, 4, 5},
		map[string]map[int]string{
			"Іванов Іван": {3: "Б", 4: "Н"},
		},
		[]string{"Іванов Іван"},
	)

	opts := Options{
		WordFiles:  []string{zbdFile},
		TabelFile:  tabelFile,
		ConfigFile: writeConfigXLSX(t, dir),
		OutputFile: filepath.Join(dir, "result.xlsx"),
	}

	checker := NewChecker(silentLog(t))
	summary, err := checker.Run(opts)
	require.NoError(t, err)

	require.Len(t, summary.Mismatches, 2)
	assert.Contains(t, summary.Mismatches[0].Message, "очікувалось 'Б', знайдено 'Н'")
	assert.Contains(t, summary.Mismatches[1].Message, "знайдено ''")
}

func TestChecker_PersonNotFound(t *testing.T) {
	dir := t.TempDir()

	zbdFile := writeZBDDocx(t, dir, map[string]string{
		"03.09.2025": "Проведено ротацію о/с РВП\nприбули:\nсолдат Іванов Іван",
	})

	tabelFile := writeTabelXLSX(t, dir, []int{3},
		map[string]map[int]string{"Невідомий Боєць": {3: "Б"}},
		[]string{"Невідомий Боєць"},
	)

	opts := Options{
		WordFiles:  []string{zbdFile},
		TabelFile:  tabelFile,
		ConfigFile: writeConfigXLSX(t, dir),
		OutputFile: filepath.Join(dir, "result.xlsx"),
	}

	checker := NewChecker(silentLog(t))
	summary, err := checker.Run(opts)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.PeopleNotFound)
	require.NotEmpty(t, summary.Errors)
	assert.Contains(t, summary.Errors[0], "ПІБ не знайдено в ЖБД: Невідомий Боєць")
	// Для невідомої людини жодних вердиктів по днях.
	assert.Empty(t, summary.Mismatches)
}

func TestChecker_RankStrippedMatch(t *testing.T) {
	dir := t.TempDir()

	// У ЖБД — зі званням, у табелі — без.
	zbdFile := writeZBDDocx(t, dir, map[string]string{
		"03.09.2025": "Проведено ротацію о/с РВП\nприбули:\nстарший сержант Іванов Іван",
	})

	tabelFile := writeTabelXLSX(t, dir, []int{3},
		map[string]map[int]string{"Іванов Іван": {3: "Б"}},
		[]string{"Іванов Іван"},
	)

	opts := Options{
		WordFiles:  []string{zbdFile},
		TabelFile:  tabelFile,
		ConfigFile: writeConfigXLSX(t, dir),
		OutputFile: filepath.Join(dir, "result.xlsx"),
	}

	checker := NewChecker(silentLog(t))
	summary, err := checker.Run(opts)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.PeopleNotFound)
	assert.Empty(t, summary.Mismatches)
}

func TestChecker_BrokenWordFileIsRecordedNotFatal(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "зіпсований вересень.docx")
	require.NoError(t, os.WriteFile(broken, []byte("не docx"), 0o644))

	tabelFile := writeTabelXLSX(t, dir, []int{3},
		map[string]map[int]string{"Іванов Іван": {}},
		[]string{"Іванов Іван"},
	)

	opts := Options{
		WordFiles:  []string{broken},
		TabelFile:  tabelFile,
		ConfigFile: writeConfigXLSX(t, dir),
		OutputFile: filepath.Join(dir, "result.xlsx"),
	}

	checker := NewChecker(silentLog(t))
	summary, err := checker.Run(opts)
	require.NoError(t, err)

	require.NotEmpty(t, summary.Errors)
	// Табель все одно оброблено та збережено.
	_, statErr := os.Stat(opts.OutputFile)
	assert.NoError(t, statErr)
}

func TestChecker_MissingTabelIsFatal(t *testing.T) {
	dir := t.TempDir()

	opts := Options{
		WordFiles:  nil,
		TabelFile:  filepath.Join(dir, "відсутній.xlsx"),
		OutputFile: filepath.Join(dir, "result.xlsx"),
	}

	checker := NewChecker(silentLog(t))
	_, err := checker.Run(opts)
	assert.Error(t, err)
}

func TestChecker_SentinelNeverMismatches(t *testing.T) {
	dir := t.TempDir()

	// Позиція "Резерв" дає сторожовий код "Р": будь-яке фактичне значення
	// не вважається розбіжністю.
	configPath := filepath.Join(dir, "config.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	require.NoError(t, f.SetCellValue(sheet, "B1", "Позиція"))
	require.NoError(t, f.SetCellValue(sheet, "C1", "Виплата"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "Резерв"))
	require.NoError(t, f.SetCellValue(sheet, "C2", "Р"))
	require.NoError(t, f.SaveAs(configPath))
	require.NoError(t, f.Close())

	zbdFile := writeZBDDocx(t, dir, map[string]string{
		"01.09.2025": "Переміщення о/с Резерв\nприбули:\nсолдат Іванов Іван",
	})

	tabelFile := writeTabelXLSX(t, dir, []int{1, 2},
		map[string]map[int]string{"Іванов Іван": {1: "X", 2: ""}},
		[]string{"Іванов Іван"},
	)

	opts := Options{
		WordFiles:  []string{zbdFile},
		TabelFile:  tabelFile,
		ConfigFile: configPath,
		OutputFile: filepath.Join(dir, "result.xlsx"),
	}

	checker := NewChecker(silentLog(t))
	summary, err := checker.Run(opts)
	require.NoError(t, err)
	assert.Empty(t, summary.Mismatches)
}
