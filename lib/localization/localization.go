package localization

import (
	"embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

type LocalizationService struct {
	bundle *i18n.Bundle
}

var (
	globalService *LocalizationService
	once          sync.Once
)

func NewLocalizationService() *LocalizationService {
	once.Do(func() {
		bundle := i18n.NewBundle(language.English)
		bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			globalService = &LocalizationService{bundle: bundle}
			return
		}

		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
				if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+entry.Name()); err != nil {
					continue
				}
			}
		}

		globalService = &LocalizationService{bundle: bundle}
	})

	return globalService
}

func (ls *LocalizationService) GetLocalizer(lang string) *i18n.Localizer {
	return i18n.NewLocalizer(ls.bundle, lang, "en")
}

// SimpleLocalizer wraps i18n.Localizer with a more convenient API
type SimpleLocalizer struct {
	Localizer *i18n.Localizer
}

// T provides a concise way to localize messages
func (sl *SimpleLocalizer) T(messageID string) string {
	return sl.Localizer.MustLocalize(&i18n.LocalizeConfig{MessageID: messageID})
}

// Tf localizes a message with template data
func (sl *SimpleLocalizer) Tf(messageID string, data map[string]any) string {
	return sl.Localizer.MustLocalize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
}

// For returns a localizer for a Telegram language code, falling back to
// English when the code is empty or unknown.
func For(lang string) *SimpleLocalizer {
	localizer := NewLocalizationService().GetLocalizer(lang)
	return &SimpleLocalizer{Localizer: localizer}
}
