// zbdcheck звіряє табель обліку з журналами бойових дій.
// Завдання передається JSON файлом (-task) або через stdin — той самий
// формат, що використовує хост-застосунок.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"zbdcheck/internal/config"
	"zbdcheck/reconcile"
)

func main() {
	taskPath := flag.String("task", "", "шлях до JSON файлу завдання (порожньо — читати stdin)")
	flag.Parse()

	log.Println("Запуск перевірки табеля за ЖБД...")

	task, err := readTask(*taskPath)
	if err != nil {
		log.Fatalf("✗ Помилка читання завдання: %v", err)
	}
	if err := task.Validate(); err != nil {
		log.Fatalf("✗ Невалідне завдання: %v", err)
	}
	log.Printf("✓ Завдання прочитано: табель %s, ЖБД файлів: %d", task.ExcelFile, len(task.WordFiles))

	logPath := task.LogFile
	if logPath == "" {
		logPath = reconcile.DefaultLogPath(task.OutputFile)
	}

	runLog, err := reconcile.NewRunLog(logPath)
	if err != nil {
		log.Fatalf("✗ Помилка створення лог-файлу %s: %v", logPath, err)
	}
	defer runLog.Close()

	checker := reconcile.NewChecker(runLog)
	summary, err := checker.Run(reconcile.Options{
		WordFiles:  task.WordFiles,
		TabelFile:  task.ExcelFile,
		ConfigFile: task.ConfigExcel,
		OutputFile: task.OutputFile,
		LogFile:    logPath,
	})
	if err != nil {
		log.Fatalf("✗ Перевірка завершилась помилкою: %v", err)
	}

	log.Printf("✓ Перевірку завершено за %s", summary.Duration)
	log.Printf("  Період: %s", summary.Period)
	log.Printf("  Перевірено осіб: %d, не знайдено в ЖБД: %d", summary.PeopleChecked, summary.PeopleNotFound)
	log.Printf("  Розбіжностей: %d, помилок: %d, попереджень: %d",
		len(summary.Mismatches), len(summary.Errors), len(summary.Warnings))
	log.Printf("  Результат: %s", summary.OutputFile)
}

// readTask читає завдання з файлу або stdin.
func readTask(path string) (*config.CheckTask, error) {
	if path == "" {
		return config.ReadTask(os.Stdin)
	}
	task, err := config.ReadTaskFile(path)
	if err != nil {
		return nil, fmt.Errorf("файл %s: %w", path, err)
	}
	return task, nil
}
