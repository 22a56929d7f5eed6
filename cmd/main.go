package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"project_opsDesk/internal/infrastructure"
	"project_opsDesk/internal/interfaces"
	"project_opsDesk/internal/interfaces/console"
	"project_opsDesk/internal/usecases"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file found, using environment as-is")
	}

	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	// Persistent credential store (survives console restarts)
	dbPath := os.Getenv("SESSION_DB_PATH")
	if dbPath == "" {
		dbPath = "session.db"
	}
	tokens, err := infrastructure.NewSQLiteTokenStore(dbPath)
	if err != nil {
		panic("Failed to open session store: " + err.Error())
	}
	defer tokens.Close()

	// Single outbound gateway
	apiClient := infrastructure.NewAPIClient(baseURL, tokens)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(apiClient, tokens)
	convUsecase := usecases.NewConversationUsecase(apiClient)
	knowledgeUsecase := usecases.NewKnowledgeUsecase(apiClient)

	// Notifiers: terminal bell always, Telegram only when configured
	notifiers := []interfaces.Notifier{&infrastructure.BellNotifier{Out: os.Stdout}}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_OPERATOR_CHAT_ID"), 10, 64)
		if err != nil {
			fmt.Println("Warning: TELEGRAM_OPERATOR_CHAT_ID missing or invalid. Telegram alerts disabled.")
		} else if tg := infrastructure.NewTelegramNotifier(token, chatID); tg != nil {
			notifiers = append(notifiers, tg)
			fmt.Println("Telegram alerts enabled")
		}
	}
	watcher := usecases.NewWatcher(apiClient, notifiers...)

	app := console.NewApp(authUsecase, convUsecase, knowledgeUsecase, watcher, os.Stdin, os.Stdout)

	// Any 401, background pollers included, lands here
	apiClient.OnUnauthorized = app.ForceLogin

	if err := app.Run(context.Background()); err != nil {
		fmt.Printf("FAILED: %v\n", err)
		os.Exit(1)
	}
}
