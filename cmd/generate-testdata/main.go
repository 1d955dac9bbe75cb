// generate-testdata створює синтетичний набір файлів для ручної перевірки:
// табель, довідник позицій та ЖБД за місяць. Частина клітинок табеля
// навмисно зіпсована, щоб у результаті були розбіжності.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/xuri/excelize/v2"

	"zbdcheck/docx"
)

var ranks = []string{"солдат", "старший солдат", "молодший сержант", "сержант", "старший лейтенант"}

var surnames = []string{
	"Шевченко", "Бондаренко", "Коваленко", "Ткаченко", "Кравченко",
	"Олійник", "Мельник", "Поліщук", "Савченко", "Руденко",
	"Марченко", "Лисенко", "Петренко", "Клименко", "Мороз",
}

var firstNames = []string{
	"Андрій", "Богдан", "Василь", "Дмитро", "Іван",
	"Максим", "Микола", "Олег", "Петро", "Сергій", "Тарас", "Юрій",
}

var patronymics = []string{
	"Андрійович", "Богданович", "Васильович", "Іванович",
	"Миколайович", "Олегович", "Петрович", "Сергійович", "Тарасович",
}

// positions довідник позиція → код виплати.
var positions = []struct {
	Name    string
	Payment string
}{
	{"РВП", "Б"},
	{"ВОП \"Граніт\"", "Б"},
	{"ВОП \"Скеля\"", "Б"},
	{"Спостережний пункт", "Н"},
	{"Опорний пункт \"Дуб\"", "Н"},
}

// person синтетичний боєць з інтервалом перебування на позиції.
type person struct {
	fullName string // з військовим званням, як у ЖБД
	bareName string // без звання, як у табелі
	position int    // індекс у positions
	arrive   int    // день прибуття
	depart   int    // день вибуття, 0 — не вибув
	shelling int    // день обстрілу в межах інтервалу, 0 — не було
}

func main() {
	outDir := flag.String("out", "testdata", "директорія для згенерованих файлів")
	count := flag.Int("people", 20, "кількість осіб")
	seed := flag.Int64("seed", 0, "seed генератора")
	flag.Parse()

	gofakeit.Seed(*seed)

	now := time.Now()
	year, month := now.Year(), now.Month()
	daysInMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("✗ Не вдалося створити директорію %s: %v", *outDir, err)
	}

	people := generatePeople(*count, daysInMonth)

	configPath := filepath.Join(*outDir, "конфігурація.xlsx")
	if err := writeConfig(configPath); err != nil {
		log.Fatalf("✗ Помилка запису довідника позицій: %v", err)
	}
	log.Printf("✓ Довідник позицій: %s", configPath)

	tabelPath := filepath.Join(*outDir, "табель.xlsx")
	if err := writeTabel(tabelPath, people, daysInMonth); err != nil {
		log.Fatalf("✗ Помилка запису табеля: %v", err)
	}
	log.Printf("✓ Табель: %s", tabelPath)

	zbdPath := filepath.Join(*outDir, "жбд.docx")
	if err := writeZBD(zbdPath, people, year, month, daysInMonth); err != nil {
		log.Fatalf("✗ Помилка запису ЖБД: %v", err)
	}
	log.Printf("✓ ЖБД: %s", zbdPath)

	log.Printf("Згенеровано осіб: %d, днів у місяці: %d", len(people), daysInMonth)
}

func generatePeople(count, daysInMonth int) []person {
	people := make([]person, 0, count)
	seen := map[string]bool{}

	for len(people) < count {
		bare := fmt.Sprintf("%s %s %s",
			gofakeit.RandomString(surnames),
			gofakeit.RandomString(firstNames),
			gofakeit.RandomString(patronymics))
		if seen[bare] {
			continue
		}
		seen[bare] = true

		p := person{
			fullName: gofakeit.RandomString(ranks) + " " + bare,
			bareName: bare,
			position: gofakeit.Number(0, len(positions)-1),
			arrive:   gofakeit.Number(1, daysInMonth-5),
		}
		// Частина людей лишається на позиції до кінця місяця.
		if gofakeit.Bool() {
			p.depart = gofakeit.Number(p.arrive+1, daysInMonth)
		}
		// Зрідка — обстріл у межах інтервалу.
		if gofakeit.Number(1, 5) == 1 {
			last := p.depart
			if last == 0 {
				last = daysInMonth
			}
			p.shelling = gofakeit.Number(p.arrive, last)
		}
		people = append(people, p)
	}
	return people
}

func writeConfig(path string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	f.SetCellValue(sheet, "B1", "Позиція")
	f.SetCellValue(sheet, "C1", "Виплата")
	for i, pos := range positions {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), pos.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), pos.Payment)
	}
	if err := f.SaveAs(path); err != nil {
		return err
	}
	return f.Close()
}

func writeTabel(path string, people []person, daysInMonth int) error {
	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]

	f.SetCellValue(sheet, "C1", "ПІБ")
	for day := 1; day <= daysInMonth; day++ {
		cell, err := excelize.CoordinatesToCellName(4+day, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheet, cell, day)
	}

	for i, p := range people {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.fullName)

		last := p.depart
		if last == 0 {
			last = daysInMonth
		}
		for day := p.arrive; day <= last; day++ {
			code := positions[p.position].Payment
			// ~10% клітинок псуємо, щоб перевірка знаходила розбіжності.
			if gofakeit.Number(1, 10) == 1 {
				code = gofakeit.RandomString([]string{"", "Н", "Б", "ВДР"})
			}
			cell, err := excelize.CoordinatesToCellName(4+day, row)
			if err != nil {
				return err
			}
			f.SetCellValue(sheet, cell, code)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return err
	}
	return f.Close()
}

// writeZBD збирає по одній таблиці на кожен день місяця, де були події.
// Кожен блок подій — окремий рядок таблиці: позиція і маркер в одній
// комірці, ПІБ з нових рядків.
func writeZBD(path string, people []person, year int, month time.Month, daysInMonth int) error {
	var tables []docx.Table

	for day := 1; day <= daysInMonth; day++ {
		var blocks []string
		blocks = append(blocks, collectBlocks(people, "прибули:", func(p person) bool { return p.arrive == day })...)
		blocks = append(blocks, collectBlocks(people, "вибули:", func(p person) bool { return p.depart == day })...)
		blocks = append(blocks, collectBlocks(people, "перебували:", func(p person) bool { return p.shelling == day })...)
		if len(blocks) == 0 {
			continue
		}

		rows := [][]string{
			{"1", "2", "3"},
			{"Дата, час", "Завдання військ (сил)", "Примітка"},
			{fmt.Sprintf("%02d.%02d.%d", day, int(month), year), blocks[0], ""},
		}
		for _, block := range blocks[1:] {
			rows = append(rows, []string{"", block, ""})
		}
		tables = append(tables, docx.Table{Rows: rows})
	}

	return docx.WriteTables(path, tables)
}

// collectBlocks повертає текст блоку на кожну позицію, де цього дня були
// відповідні події.
func collectBlocks(people []person, marker string, match func(person) bool) []string {
	byPosition := map[int][]string{}
	var order []int
	for _, p := range people {
		if !match(p) {
			continue
		}
		if _, ok := byPosition[p.position]; !ok {
			order = append(order, p.position)
		}
		byPosition[p.position] = append(byPosition[p.position], p.fullName)
	}

	var blocks []string
	for _, pos := range order {
		text := fmt.Sprintf("Проведено ротацію о/с %s\n%s", positions[pos].Name, marker)
		for _, name := range byPosition[pos] {
			text += "\n" + name
		}
		blocks = append(blocks, text)
	}
	return blocks
}
