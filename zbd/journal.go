package zbd

import (
	"time"

	"zbdcheck/normalization"
)

// Journal зібрані з усіх файлів ЖБД події, проіндексовані по людях.
// Ключ основної мапи — ПІБ так, як його записано у ЖБД (зазвичай зі званням);
// додатковий індекс дозволяє шукати по ПІБ без звання.
type Journal struct {
	records    map[string][]EventRecord
	byNormName map[string]string // ПІБ без звання → ПІБ як у ЖБД
	order      []string          // порядок першої появи, для стабільних звітів

	period *Period
}

// NewJournal створює порожній журнал.
func NewJournal() *Journal {
	return &Journal{
		records:    make(map[string][]EventRecord),
		byNormName: make(map[string]string),
	}
}

// Add додає подію для людини. Нормалізований індекс оновлюється за правилом
// "останній запис перемагає" — так поводився і вихідний словник.
func (j *Journal) Add(rawName string, record EventRecord) {
	if _, seen := j.records[rawName]; !seen {
		j.order = append(j.order, rawName)
	}
	j.records[rawName] = append(j.records[rawName], record)
	j.byNormName[normalization.NormalizeName(rawName)] = rawName
}

// Find шукає людину: спершу точний збіг сирого рядка, потім — по ПІБ без
// звання. Повертає ключ ЖБД, його записи та ознаку успіху.
func (j *Journal) Find(rawName string) (string, []EventRecord, bool) {
	if records, ok := j.records[rawName]; ok {
		return rawName, records, true
	}

	normalized := normalization.NormalizeName(rawName)
	if zbdName, ok := j.byNormName[normalized]; ok {
		return zbdName, j.records[zbdName], true
	}

	return "", nil, false
}

// People повертає ПІБ у порядку першої появи у ЖБД.
func (j *Journal) People() []string {
	return j.order
}

// Len кількість людей у журналі.
func (j *Journal) Len() int {
	return len(j.records)
}

// Period звітний період або nil, якщо він ще не визначений.
func (j *Journal) Period() *Period {
	return j.period
}

// SetPeriodOnce фіксує звітний період. Після першого встановлення період
// не змінюється до кінця прогону.
func (j *Journal) SetPeriodOnce(year int, month time.Month) {
	if j.period != nil {
		return
	}
	j.period = &Period{Year: year, Month: month}
}

// ResolvedPeriod повертає період, підставляючи поточний місяць, якщо його так
// і не вдалося визначити з файлів.
func (j *Journal) ResolvedPeriod() Period {
	if j.period != nil {
		return *j.period
	}
	return CurrentPeriod()
}
