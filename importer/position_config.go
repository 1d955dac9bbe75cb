// Package importer завантажує зовнішні довідники для перевірки табеля.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// configSheet аркуш з конфігурацією позицій; якщо його немає, береться перший.
const configSheet = "РВП"

// PositionConfig довідник "позиція → код виплати". Незмінний після завантаження.
type PositionConfig struct {
	payments map[string]string
	// keys відсортовані від довшого до коротшого для детермінованого
	// розпізнавання позиції у вільному тексті (довша назва перекриває коротшу).
	keys []string
}

// NewPositionConfig будує довідник з готової мапи (для тестів та вбудованих конфігурацій).
func NewPositionConfig(payments map[string]string) *PositionConfig {
	cfg := &PositionConfig{payments: make(map[string]string, len(payments))}
	for position, payment := range payments {
		cfg.payments[position] = payment
	}
	cfg.rebuildKeys()
	return cfg
}

func (c *PositionConfig) rebuildKeys() {
	c.keys = c.keys[:0]
	for position := range c.payments {
		c.keys = append(c.keys, position)
	}
	sort.Slice(c.keys, func(i, j int) bool {
		if len(c.keys[i]) != len(c.keys[j]) {
			return len(c.keys[i]) > len(c.keys[j])
		}
		return c.keys[i] < c.keys[j]
	})
}

// Len кількість позицій у довіднику.
func (c *PositionConfig) Len() int {
	return len(c.payments)
}

// Positions повертає назви позицій (від довшої до коротшої).
func (c *PositionConfig) Positions() []string {
	return c.keys
}

// Lookup повертає код виплати для позиції. Перед відмовою пробує варіанти
// ключа: як є, без пробілів по краях, у нижньому та верхньому регістрі.
func (c *PositionConfig) Lookup(position string) (string, bool) {
	if position == "" {
		return "", false
	}

	candidates := []string{
		position,
		strings.TrimSpace(position),
		strings.ToLower(position),
		strings.ToUpper(position),
	}
	for _, key := range candidates {
		if key == "" {
			continue
		}
		if payment, ok := c.payments[key]; ok {
			return payment, true
		}
	}

	return "", false
}

// MatchPosition шукає відому позицію як підрядок у рядку тексту (без
// урахування регістру). Повертає назву позиції з довідника або false, якщо
// жодна не зустрілася. Невідомі позиції розпізнати неможливо за побудовою.
func (c *PositionConfig) MatchPosition(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, position := range c.keys {
		if strings.Contains(lower, strings.ToLower(position)) {
			return position, true
		}
	}
	return "", false
}

// LoadPositionConfig завантажує довідник позицій з файлу. Формат визначається
// розширенням: .csv читається як CSV (utf-8 або cp1251), інакше — Excel.
func LoadPositionConfig(path string) (*PositionConfig, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return LoadPositionConfigCSV(path)
	}
	return LoadPositionConfigXLSX(path)
}

// LoadPositionConfigXLSX читає конфігурацію з Excel файлу: аркуш "РВП" якщо
// присутній, інакше перший аркуш; колонка B — позиція, колонка C — виплата,
// перший рядок — заголовок.
func LoadPositionConfigXLSX(path string) (*PositionConfig, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("не вдалося відкрити конфігураційний Excel %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]
	for _, name := range f.GetSheetList() {
		if name == configSheet {
			sheet = name
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("не вдалося прочитати аркуш %s: %w", sheet, err)
	}

	payments := make(map[string]string)
	for i, row := range rows {
		if i == 0 {
			continue // заголовок
		}
		if len(row) < 3 {
			continue
		}
		position := strings.TrimSpace(row[1])
		payment := strings.TrimSpace(row[2])
		if position == "" || payment == "" {
			continue
		}
		payments[position] = payment
	}

	return NewPositionConfig(payments), nil
}

// LoadPositionConfigCSV читає конфігурацію з CSV (колонки: позиція;виплата).
// Файли з 1С нерідко збережені у cp1251, тому при невалідному utf-8 вміст
// перекодовується через charmap.Windows1251.
func LoadPositionConfigCSV(path string) (*PositionConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не вдалося відкрити CSV %s: %w", path, err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("не вдалося прочитати CSV %s: %w", path, err)
	}

	text := string(raw)
	if !utf8.Valid(raw) {
		decoded, _, err := transform.String(charmap.Windows1251.NewDecoder(), text)
		if err != nil {
			return nil, fmt.Errorf("не вдалося перекодувати CSV з cp1251: %w", err)
		}
		text = decoded
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	payments := make(map[string]string)
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("помилка розбору CSV %s: %w", path, err)
		}
		line++
		if line == 1 {
			continue // заголовок, як і в Excel варіанті
		}
		if len(record) < 2 {
			continue
		}
		position := strings.TrimSpace(record[0])
		payment := strings.TrimSpace(record[1])
		if position == "" || payment == "" {
			continue
		}
		payments[position] = payment
	}

	return NewPositionConfig(payments), nil
}
