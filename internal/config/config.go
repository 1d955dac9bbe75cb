// Package config описує конфігурацію прогону перевірки та серверного режиму.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// CheckTask завдання на перевірку. Назви полів збережені такими, якими їх
// передає хост-застосунок через stdin (JSON IPC).
type CheckTask struct {
	WordFiles   []string `json:"word_files"`
	ExcelFile   string   `json:"excel_file"`
	ConfigExcel string   `json:"config_excel,omitempty"`
	OutputFile  string   `json:"output_file"`
	LogFile     string   `json:"log_file,omitempty"`
}

// ReadTask читає завдання з JSON потоку.
func ReadTask(r io.Reader) (*CheckTask, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("не вдалося прочитати конфігурацію: %w", err)
	}

	var task CheckTask
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, fmt.Errorf("помилка парсингу JSON конфігурації: %w", err)
	}
	return &task, nil
}

// ReadTaskFile читає завдання з файлу.
func ReadTaskFile(path string) (*CheckTask, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не вдалося відкрити файл завдання %s: %w", path, err)
	}
	defer file.Close()
	return ReadTask(file)
}

// Validate перевіряє обов'язкові поля та наявність вхідних файлів.
// Розбіжності у даних — нормальний результат перевірки; фатальними є лише
// відсутні обов'язкові входи.
func (t *CheckTask) Validate() error {
	if len(t.WordFiles) == 0 {
		return fmt.Errorf("не вказано Word файли")
	}
	if t.ExcelFile == "" {
		return fmt.Errorf("не вказано Excel файл")
	}
	if t.OutputFile == "" {
		return fmt.Errorf("не вказано файл для збереження результатів")
	}

	if _, err := os.Stat(t.ExcelFile); err != nil {
		return fmt.Errorf("Excel файл не знайдено: %s", t.ExcelFile)
	}
	for _, wordFile := range t.WordFiles {
		if _, err := os.Stat(wordFile); err != nil {
			return fmt.Errorf("Word файл не знайдено: %s", wordFile)
		}
	}
	if t.ConfigExcel != "" {
		if _, err := os.Stat(t.ConfigExcel); err != nil {
			return fmt.Errorf("конфігураційний Excel не знайдено: %s", t.ConfigExcel)
		}
	}

	return nil
}

// ServerConfig налаштування HTTP режиму.
type ServerConfig struct {
	Port       string  // порт HTTP сервера
	RunsDBPath string  // шлях до БД історії прогонів; порожній — історія вимкнена
	CheckRPS   float64 // ліміт запитів на перевірку за секунду
	CheckBurst int     // розмір сплеску для лімітера
}

// LoadServerConfig читає налаштування сервера зі змінних оточення,
// підставляючи значення за замовчуванням.
func LoadServerConfig() *ServerConfig {
	cfg := &ServerConfig{
		Port:       envOr("ZBDCHECK_PORT", "8090"),
		RunsDBPath: envOr("ZBDCHECK_RUNS_DB", "zbdcheck_runs.db"),
		CheckRPS:   1,
		CheckBurst: 2,
	}

	if raw := os.Getenv("ZBDCHECK_CHECK_RPS"); raw != "" {
		if rps, err := strconv.ParseFloat(raw, 64); err == nil && rps > 0 {
			cfg.CheckRPS = rps
		}
	}
	if raw := os.Getenv("ZBDCHECK_CHECK_BURST"); raw != "" {
		if burst, err := strconv.Atoi(raw); err == nil && burst > 0 {
			cfg.CheckBurst = burst
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
