package i18n

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	FallbackLocale = "en"
	statusesFile   = "statuses.yaml"
)

type Translations map[string]string

var (
	locales = make(map[string]Translations)
	mu      sync.RWMutex
)

// LoadTranslations reads <localePath>/<locale>/statuses.yaml for every
// locale directory. Sections are flattened into "<section>.<key>", so
// TRAINING.pending_hod becomes "training.pending_hod".
func LoadTranslations(localePath string) error {
	entries, err := os.ReadDir(localePath)
	if err != nil {
		return err
	}

	loaded := make(map[string]Translations)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		locale := entry.Name()
		filePath := filepath.Join(localePath, locale, statusesFile)

		data, err := os.ReadFile(filePath)
		if err != nil {
			continue
		}

		var sections map[string]map[string]string
		if err := yaml.Unmarshal(data, &sections); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		trans := make(Translations)
		for section, keys := range sections {
			prefix := strings.ToLower(section) + "."
			for k, v := range keys {
				trans[prefix+k] = v
			}
		}
		loaded[locale] = trans
	}

	mu.Lock()
	defer mu.Unlock()
	for locale, trans := range loaded {
		locales[locale] = trans
	}
	return nil
}

func Translate(locale, key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if locale != FallbackLocale {
		if trans, ok := locales[FallbackLocale]; ok {
			if val, ok := trans[key]; ok {
				return val
			}
		}
	}

	return key
}

// Supported reports whether a locale has been loaded.
func Supported(locale string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := locales[locale]
	return ok
}
