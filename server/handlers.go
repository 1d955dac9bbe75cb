package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"zbdcheck/internal/config"
	"zbdcheck/reconcile"
)

// checkResponse відповідь на запит перевірки.
type checkResponse struct {
	RunID   int64              `json:"run_id,omitempty"`
	Summary *reconcile.Summary `json:"summary"`
}

// handleCheck виконує прогін перевірки за завданням з тіла запиту.
// Файли мають бути доступні серверу локально — це той самий JSON, що й у
// CLI режимі.
func (s *Server) handleCheck(c *gin.Context) {
	var task config.CheckTask
	if err := c.ShouldBindJSON(&task); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "невалідний JSON завдання: " + err.Error()})
		return
	}

	if err := task.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logPath := task.LogFile
	if logPath == "" {
		logPath = reconcile.DefaultLogPath(task.OutputFile)
	}

	runLog, err := reconcile.NewRunLog(logPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer runLog.Close()

	reqID := RequestIDFromContext(c)
	Logger.Info("Запуск перевірки", "request_id", reqID, "tabel", task.ExcelFile, "word_files", len(task.WordFiles))

	checker := reconcile.NewChecker(runLog)
	summary, err := checker.Run(reconcile.Options{
		WordFiles:  task.WordFiles,
		TabelFile:  task.ExcelFile,
		ConfigFile: task.ConfigExcel,
		OutputFile: task.OutputFile,
		LogFile:    logPath,
	})
	if err != nil {
		Logger.Error("Перевірка завершилась помилкою", "request_id", reqID, "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	response := checkResponse{Summary: summary}
	if s.runsDB != nil {
		runID, err := s.runsDB.SaveRun(summary, task.ExcelFile, task.WordFiles)
		if err != nil {
			// Історія — допоміжна: невдалий запис не псує результат перевірки.
			Logger.Warn("Не вдалося зберегти прогін в історію", "request_id", reqID, "error", err)
		} else {
			response.RunID = runID
		}
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s.runsDB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "історія прогонів вимкнена"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	runs, err := s.runsDB.ListRuns(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) handleRunMismatches(c *gin.Context) {
	if s.runsDB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "історія прогонів вимкнена"})
		return
	}

	runID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "невалідний id прогону"})
		return
	}

	mismatches, err := s.runsDB.RunMismatches(runID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"run_id": runID, "mismatches": mismatches})
}
