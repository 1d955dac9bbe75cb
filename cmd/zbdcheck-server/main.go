// zbdcheck-server запускає HTTP режим перевірки табелів: POST /api/check
// приймає те саме JSON завдання, що й CLI, історія прогонів зберігається
// в SQLite.
package main

import (
	"log"

	"zbdcheck/database"
	"zbdcheck/internal/config"
	"zbdcheck/server"
)

func main() {
	log.Println("Запуск HTTP сервера перевірки табелів...")

	log.Println("[1/3] Завантаження конфігурації...")
	cfg := config.LoadServerConfig()
	log.Printf("✓ Конфігурація завантажена. Порт: %s", cfg.Port)

	log.Println("[2/3] Ініціалізація бази історії прогонів...")
	runsDB, err := database.OpenRunsDB(cfg.RunsDBPath)
	if err != nil {
		// Історія — допоміжна функція, сервер працює й без неї.
		log.Printf("⚠ Не вдалося відкрити базу %s: %v", cfg.RunsDBPath, err)
		log.Println("⚠ Історія прогонів вимкнена")
		runsDB = nil
	} else {
		defer runsDB.Close()
		log.Printf("✓ База історії ініціалізована: %s", cfg.RunsDBPath)
	}

	log.Println("[3/3] Запуск сервера...")
	srv := server.New(cfg, runsDB)
	if err := srv.Run(); err != nil {
		log.Fatalf("✗ Помилка запуску сервера: %v", err)
	}
}
