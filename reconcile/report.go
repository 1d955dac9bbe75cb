package reconcile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// RunLog журнал прогону: все, що бачить оператор у консолі, дублюється у
// лог-файл поруч із результатом. Файл закривається детерміновано через Close
// на будь-якому шляху виходу, щоб не тримати блокування.
type RunLog struct {
	console io.Writer
	file    *os.File
}

// NewRunLog відкриває лог-файл (створюючи теку за потреби). Порожній шлях —
// лог лише у консоль.
func NewRunLog(path string) (*RunLog, error) {
	log := &RunLog{console: os.Stdout}

	if path == "" {
		return log, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("не вдалося створити теку для логу %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("не вдалося відкрити лог-файл %s: %w", path, err)
	}
	log.file = file
	return log, nil
}

// Printf пише рядок у консоль та у лог-файл.
func (l *RunLog) Printf(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	fmt.Fprint(l.console, text)
	if l.file != nil {
		l.file.WriteString(text)
		l.file.Sync()
	}
}

// Close закриває лог-файл, якщо він був відкритий.
func (l *RunLog) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// DefaultLogPath шлях логу за замовчуванням: файл результату з розширенням .log.
func DefaultLogPath(outputFile string) string {
	ext := filepath.Ext(outputFile)
	return strings.TrimSuffix(outputFile, ext) + ".log"
}
