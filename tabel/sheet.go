// Package tabel читає місячний табель обліку: ПІБ у колонці C, коди виплат
// по днях у колонках E..AI.
package tabel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"zbdcheck/zbd"
)

const (
	// NameColumn колонка з ПІБ (C).
	NameColumn = 3
	// FirstDayColumn перша колонка з днями місяця (E).
	FirstDayColumn = 5
	// LastDayColumn остання можлива колонка з днями (AI, 31-й день).
	LastDayColumn = 35
	// HeaderRow рядок із заголовками дат.
	HeaderRow = 1
	// FirstPersonRow перший рядок з людьми.
	FirstPersonRow = 2
)

// excelEpoch початок відліку серійних дат Excel.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// DayColumn зіставлення колонки табеля з календарною датою.
type DayColumn struct {
	Col  int
	Date time.Time
}

// Row один рядок табеля.
type Row struct {
	Index   int // номер рядка у аркуші
	RawName string
}

// ReadDayColumns читає заголовки E1:AI1 і будує список колонок з датами.
// Спершу заголовок трактується як номер дня місяця (1..31) у звітному
// періоді; інакше — як дата текстом або серійним числом Excel.
func ReadDayColumns(f *excelize.File, sheet string, period zbd.Period) ([]DayColumn, error) {
	var columns []DayColumn

	for col := FirstDayColumn; col <= LastDayColumn; col++ {
		cell, err := excelize.CoordinatesToCellName(col, HeaderRow)
		if err != nil {
			return nil, fmt.Errorf("невалідні координати колонки %d: %w", col, err)
		}

		value, err := f.GetCellValue(sheet, cell)
		if err != nil {
			return nil, fmt.Errorf("не вдалося прочитати заголовок %s: %w", cell, err)
		}

		date, ok := parseHeaderDate(value, period)
		if !ok {
			continue
		}
		columns = append(columns, DayColumn{Col: col, Date: date})
	}

	return columns, nil
}

func parseHeaderDate(value string, period zbd.Period) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if n, err := strconv.Atoi(value); err == nil {
		if n >= 1 && n <= 31 {
			return period.Day(n), true
		}
		// Великі числа — серійні дати Excel (дні від 30.12.1899).
		return excelEpoch.AddDate(0, 0, n), true
	}

	if date, ok := zbd.ParseDate(value); ok {
		return date, true
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		return excelEpoch.AddDate(0, 0, int(serial)), true
	}

	return time.Time{}, false
}

// ReadRows читає ПІБ з колонки C, починаючи з другого рядка, до першої
// порожньої комірки.
func ReadRows(f *excelize.File, sheet string) ([]Row, error) {
	var rows []Row

	for rowIdx := FirstPersonRow; ; rowIdx++ {
		cell, err := excelize.CoordinatesToCellName(NameColumn, rowIdx)
		if err != nil {
			return nil, fmt.Errorf("невалідні координати рядка %d: %w", rowIdx, err)
		}

		value, err := f.GetCellValue(sheet, cell)
		if err != nil {
			return nil, fmt.Errorf("не вдалося прочитати комірку %s: %w", cell, err)
		}

		name := strings.TrimSpace(value)
		if name == "" {
			break
		}

		rows = append(rows, Row{Index: rowIdx, RawName: name})
	}

	return rows, nil
}

// CellValue повертає значення комірки дня для рядка людини.
func CellValue(f *excelize.File, sheet string, row Row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row.Index)
	if err != nil {
		return "", err
	}
	return f.GetCellValue(sheet, cell)
}
