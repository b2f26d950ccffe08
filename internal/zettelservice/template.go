package zettelservice

import (
	"os"
	"strings"
	"time"
)

// Template placeholders replaced when creating a note.
const (
	placeholderTitle = "${TITLE}"
	placeholderDate  = "${DATE}"
)

// renderTemplate returns the initial content for a new note: the template
// file with placeholders substituted, or nothing when no template is
// configured or readable.
func (s *Service) renderTemplate(title string) ([]byte, error) {
	if s.template == "" {
		return nil, nil
	}
	data, err := os.ReadFile(s.template)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	content := strings.ReplaceAll(string(data), placeholderTitle, title)
	content = strings.ReplaceAll(content, placeholderDate, time.Now().Format("2006-01-02"))
	return []byte(content), nil
}
