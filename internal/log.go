package internal

import (
	"fmt"
	"log/slog"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func InitSlog(level string) {
	var programLevel slog.Level
	if err := (&programLevel).UnmarshalText([]byte(level)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %s: %v, using info\n", level, err)
		programLevel = slog.LevelInfo
	}

	leveler := &slog.LevelVar{}
	leveler.Set(programLevel)

	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		AddSource: true,
		Level:     leveler,
	})
	slog.SetDefault(slog.New(h))
}

func GetUpdateLogger(upd tgbotapi.Update) *slog.Logger {
	lg := slog.With("update_id", upd.UpdateID)

	switch {
	case upd.Message != nil:
		lg = lg.With("chat_id", upd.Message.Chat.ID)
		if upd.Message.From != nil {
			lg = lg.With("user_id", upd.Message.From.ID)
		}
	case upd.ChatMember != nil:
		lg = lg.With("chat_id", upd.ChatMember.Chat.ID)
		if u := upd.ChatMember.NewChatMember.User; u != nil {
			lg = lg.With("user_id", u.ID)
		}
	}

	return lg
}
