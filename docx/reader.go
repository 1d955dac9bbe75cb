// Package docx читає таблиці з .docx файлів.
//
// .docx — це zip-архів з word/document.xml усередині (WordprocessingML).
// Пакет навмисно не знає нічого про ЖБД: він повертає лише матриці текстів
// комірок для кожної таблиці верхнього рівня документа.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Table одна таблиця документа: рядки × комірки, текст абзаців у комірці
// з'єднано через "\n" (так само, як його бачить оператор у Word).
type Table struct {
	Rows [][]string
}

// CellText повертає текст комірки або "" якщо координати поза таблицею.
func (t Table) CellText(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// ExtractTables відкриває .docx файл та повертає всі таблиці верхнього рівня.
// Вкладені таблиці не розгортаються окремо — їхній текст потрапляє у
// батьківську комірку.
func ExtractTables(path string) ([]Table, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("не вдалося відкрити docx %s: %w", path, err)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("не вдалося відкрити document.xml: %w", err)
		}
		defer rc.Close()

		tables, err := parseDocument(rc)
		if err != nil {
			return nil, fmt.Errorf("не вдалося розібрати document.xml: %w", err)
		}
		return tables, nil
	}

	return nil, fmt.Errorf("%s: document.xml не знайдено, файл не схожий на docx", path)
}

// parseDocument проходить WordprocessingML потоково, збираючи текст комірок.
// Глибина tbl відстежується, щоб вкладені таблиці не ставали окремими
// елементами результату.
func parseDocument(r io.Reader) ([]Table, error) {
	decoder := xml.NewDecoder(r)

	var (
		tables   []Table
		table    *Table
		row      []string
		cell     strings.Builder
		tblDepth int
		inCell   bool
		inText   bool
		cellPars int // кількість завершених абзаців у поточній комірці
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "tbl":
				tblDepth++
				if tblDepth == 1 {
					tables = append(tables, Table{})
					table = &tables[len(tables)-1]
				}
			case "tr":
				if tblDepth == 1 {
					row = nil
				}
			case "tc":
				if tblDepth == 1 {
					inCell = true
					cell.Reset()
					cellPars = 0
				}
			case "p":
				if inCell && cellPars > 0 {
					cell.WriteString("\n")
				}
			case "br", "cr":
				if inCell {
					cell.WriteString("\n")
				}
			case "tab":
				if inCell {
					cell.WriteString("\t")
				}
			case "t":
				inText = inCell
			}

		case xml.CharData:
			// Текст береться лише з елементів w:t, інакше у комірку потрапили б
			// пробіли форматування самого XML.
			if inText {
				cell.Write(el)
			}

		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "tbl":
				tblDepth--
			case "tr":
				if tblDepth == 1 && table != nil && row != nil {
					table.Rows = append(table.Rows, row)
					row = nil
				}
			case "tc":
				if tblDepth == 1 && inCell {
					row = append(row, cell.String())
					inCell = false
				}
			case "p":
				if inCell {
					cellPars++
				}
			}
		}
	}

	return tables, nil
}
