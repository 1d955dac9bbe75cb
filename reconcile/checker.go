package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"zbdcheck/importer"
	"zbdcheck/normalization"
	"zbdcheck/tabel"
	"zbdcheck/zbd"
)

// Кольори заливки розміченої копії табеля.
const (
	fillRed   = "FFCCCC" // ПІБ не знайдено / невірна виплата
	fillGreen = "CCFFCC" // підтверджений збіг
	fillWhite = "FFFFFF" // нейтральна комірка
)

// Options параметри одного прогону перевірки.
type Options struct {
	WordFiles  []string // файли ЖБД
	TabelFile  string   // табель, який перевіряється
	ConfigFile string   // довідник позицій/виплат (xlsx або csv); може бути порожнім
	OutputFile string   // куди зберегти розмічену копію табеля
	LogFile    string   // лог прогону; порожній — поруч з результатом
}

// Mismatch одна зафіксована розбіжність для звіту та історії прогонів.
type Mismatch struct {
	Person   string    `json:"person"`
	Day      time.Time `json:"day"`
	Expected string    `json:"expected"`
	Actual   string    `json:"actual"`
	Message  string    `json:"message"`
}

// Summary підсумок прогону.
type Summary struct {
	Period         zbd.Period    `json:"period"`
	PeopleChecked  int           `json:"people_checked"`
	PeopleNotFound int           `json:"people_not_found"`
	Errors         []string      `json:"errors"`
	Warnings       []string      `json:"warnings"`
	Mismatches     []Mismatch    `json:"mismatches"`
	OutputFile     string        `json:"output_file"`
	Duration       time.Duration `json:"duration"`
}

// Checker виконує звірку табеля з ЖБД. Весь змінюваний стан (журнал, списки
// помилок, період) належить одному прогону і не переживає його.
type Checker struct {
	positions *importer.PositionConfig
	journal   *zbd.Journal
	log       *RunLog

	summary Summary
}

// NewChecker створює перевірку з порожнім журналом.
func NewChecker(log *RunLog) *Checker {
	return &Checker{
		positions: importer.NewPositionConfig(nil),
		journal:   zbd.NewJournal(),
		log:       log,
	}
}

func (c *Checker) errorf(format string, args ...any) {
	c.summary.Errors = append(c.summary.Errors, fmt.Sprintf(format, args...))
}

func (c *Checker) warnf(format string, args ...any) {
	c.summary.Warnings = append(c.summary.Warnings, fmt.Sprintf(format, args...))
}

// Run виконує повний прогін: довідник, ЖБД, табель, розмічена копія.
// Помилка повертається лише коли неможливо прочитати табель або записати
// результат; часткові проблеми з ЖБД потрапляють у Summary.Errors.
func (c *Checker) Run(opts Options) (*Summary, error) {
	started := time.Now()

	c.log.Printf("📝 Перевірка %d Word файлів...", len(opts.WordFiles))

	if opts.ConfigFile != "" {
		c.log.Printf("⚙️ Використання конфігураційного Excel: %s", filepath.Base(opts.ConfigFile))
		c.loadPositions(opts.ConfigFile)
	}

	extractor := zbd.NewExtractor(c.positions, c.journal)
	for i, wordFile := range opts.WordFiles {
		c.log.Printf("  %d. %s", i+1, filepath.Base(wordFile))
		if _, err := os.Stat(wordFile); err != nil {
			c.errorf("Word файл не знайдено: %s", filepath.Base(wordFile))
			continue
		}
		if _, err := extractor.ParseFile(wordFile); err != nil {
			// Один зіпсований файл не зупиняє перевірку решти.
			c.errorf("%v", err)
		}
	}

	c.log.Printf("📖 Читання табелю Excel: %s", opts.TabelFile)

	if err := c.checkTabel(opts); err != nil {
		c.log.Printf("❌ Помилка: %v", err)
		return nil, err
	}

	c.summary.OutputFile = opts.OutputFile
	c.summary.Duration = time.Since(started)

	c.log.Printf("✅ Перевірка завершена")
	c.log.Printf("  - Помилок: %d", len(c.summary.Errors))
	c.log.Printf("  - Попереджень: %d", len(c.summary.Warnings))

	return &c.summary, nil
}

// loadPositions завантажує довідник позицій. Невдача — попередження, а не
// зупинка: перевірка без довідника просто не знайде жодної позиції.
func (c *Checker) loadPositions(path string) {
	positions, err := importer.LoadPositionConfig(path)
	if err != nil {
		c.warnf("Помилка завантаження конфігурації: %v", err)
		c.log.Printf("  ⚠️ Помилка завантаження конфігурації: %v", err)
		return
	}
	c.positions = positions
	c.log.Printf("  ✅ Завантажено %d позицій", positions.Len())
}

func (c *Checker) checkTabel(opts Options) error {
	f, err := excelize.OpenFile(opts.TabelFile)
	if err != nil {
		return fmt.Errorf("не вдалося відкрити табель %s: %w", opts.TabelFile, err)
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]
	period := c.journal.ResolvedPeriod()
	c.summary.Period = period

	dayColumns, err := tabel.ReadDayColumns(f, sheet, period)
	if err != nil {
		return err
	}

	rows, err := tabel.ReadRows(f, sheet)
	if err != nil {
		return err
	}

	c.log.Printf("  📅 Знайдено %d дат у табелі", len(dayColumns))
	c.log.Printf("  📅 Місяць перевірки: %d/%d", int(period.Month), period.Year)
	c.log.Printf("  👥 Знайдено %d ПІБ у ЖБД", c.journal.Len())

	styles, err := newVerdictStyles(f)
	if err != nil {
		return err
	}

	for _, row := range rows {
		c.checkPerson(f, sheet, row, dayColumns, period, styles)
		c.summary.PeopleChecked++
	}

	c.log.Printf("  📊 Перевірено %d ПІБ", c.summary.PeopleChecked)
	c.log.Printf("  ❌ Не знайдено в ЖБД: %d", c.summary.PeopleNotFound)

	if err := f.SaveAs(opts.OutputFile); err != nil {
		return fmt.Errorf("не вдалося зберегти результат %s: %w", opts.OutputFile, err)
	}
	c.log.Printf("  💾 Результат збережено: %s", opts.OutputFile)
	return nil
}

// checkPerson перевіряє один рядок табеля по всіх датах.
func (c *Checker) checkPerson(f *excelize.File, sheet string, row tabel.Row, dayColumns []tabel.DayColumn, period zbd.Period, styles verdictStyles) {
	_, records, found := c.journal.Find(row.RawName)
	if !found {
		c.summary.PeopleNotFound++
		c.errorf("ПІБ не знайдено в ЖБД: %s", row.RawName)
		styles.paint(f, sheet, tabel.NameColumn, row.Index, fillRed)
		return
	}

	styles.paint(f, sheet, tabel.NameColumn, row.Index, fillGreen)

	for _, day := range dayColumns {
		expectedRaw, _ := Resolve(records, day.Date, period, c.positions)
		expected := normalization.NormalizePayment(expectedRaw)

		actualRaw, err := tabel.CellValue(f, sheet, row, day.Col)
		if err != nil {
			c.warnf("%s: не вдалося прочитати комірку дня %s: %v", row.RawName, day.Date.Format("02.01.2006"), err)
			continue
		}
		actual := normalization.NormalizePayment(actualRaw)

		verdict := Judge(row.RawName, day.Date, expected, expectedRaw, actual, actualRaw)

		switch verdict.Kind {
		case VerdictSkip:
			// Сторожовий код: комірка лишається без розмітки.
		case VerdictMatch:
			// Збіг "порожньо == порожньо" зеленим не відмічається.
			if verdict.Expected != "" {
				styles.paint(f, sheet, day.Col, row.Index, fillGreen)
			}
		case VerdictNeutral:
			styles.paint(f, sheet, day.Col, row.Index, fillWhite)
		case VerdictMismatch:
			styles.paint(f, sheet, day.Col, row.Index, fillRed)
			c.errorf("%s", verdict.Message)
			c.summary.Mismatches = append(c.summary.Mismatches, Mismatch{
				Person:   row.RawName,
				Day:      day.Date,
				Expected: verdict.Expected,
				Actual:   verdict.Actual,
				Message:  verdict.Message,
			})
		}
	}
}

// verdictStyles кеш стилів заливки — excelize реєструє стиль один раз на файл.
type verdictStyles struct {
	byColor map[string]int
}

func newVerdictStyles(f *excelize.File) (verdictStyles, error) {
	styles := verdictStyles{byColor: make(map[string]int, 3)}
	for _, color := range []string{fillRed, fillGreen, fillWhite} {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return styles, fmt.Errorf("не вдалося створити стиль заливки %s: %w", color, err)
		}
		styles.byColor[color] = id
	}
	return styles, nil
}

func (s verdictStyles) paint(f *excelize.File, sheet string, col, row int, color string) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	// Помилка встановлення стилю не впливає на вердикти, лише на розмітку.
	_ = f.SetCellStyle(sheet, cell, cell, s.byColor[color])
}
