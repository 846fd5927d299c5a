package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"scenario-planner/internal/api"
	"scenario-planner/internal/llm"
)

func main() {
	llmCfg := llm.Config{
		Provider: os.Getenv("PROVIDER"),
		APIKey:   os.Getenv("API_KEY"),
		BaseURL:  os.Getenv("API_BASE"),
		Model:    os.Getenv("MODEL"),
	}
	if temp := os.Getenv("LLM_TEMPERATURE"); temp != "" {
		if v, err := strconv.ParseFloat(temp, 64); err == nil {
			llmCfg.Temperature = v
		}
	}

	mockOnFail := true
	if v := strings.TrimSpace(os.Getenv("USE_MOCK_ON_FAIL")); v != "" {
		mockOnFail = v == "1" || strings.EqualFold(v, "true")
	}

	var origins []string
	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	usageDBPath := strings.TrimSpace(os.Getenv("SCENARIO_DB_PATH"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("DISABLE_USAGE_LOG")), "true") {
		usageDBPath = ""
	}

	server, err := api.NewServer(api.Config{
		AllowedOrigins: origins,
		LLMConfig:      llmCfg,
		MockOnFail:     mockOnFail,
		UsageDBPath:    usageDBPath,
	})
	if err != nil {
		logrus.Fatalf("create server: %v", err)
	}
	defer server.Close()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	logrus.Infof("starting scenario-planner backend on :%s", port)
	if err := server.Router().Run(":" + port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
