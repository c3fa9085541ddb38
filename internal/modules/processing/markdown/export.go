package markdown

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homeline/storefront/internal/database"
	"github.com/homeline/storefront/internal/pkg/response"
)

type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// ExtractHeadings returns the ATX headings of a markdown body. Lines inside
// fenced code blocks are ignored.
func ExtractHeadings(text string) []Heading {
	headings := []Heading{}
	fenced := false
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fenced = !fenced
			continue
		}
		if fenced || !strings.HasPrefix(line, "#") {
			continue
		}
		level := len(line) - len(strings.TrimLeft(line, "#"))
		if level > 6 {
			continue
		}
		rest := line[level:]
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		content := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(rest), "#"))
		if content == "" {
			continue
		}
		id := database.Slugify(content)
		if id == "" {
			id = "heading"
		}
		headings = append(headings, Heading{Level: level, Text: content, ID: id})
	}
	return headings
}

// WriteArchive zips every document under root as {kind}/{slug}.md. Files are
// copied byte for byte, malformed ones included.
func WriteArchive(root string, buf *bytes.Buffer) (int, error) {
	kinds, err := os.ReadDir(root)
	if err != nil {
		return 0, err
	}
	w := zip.NewWriter(buf)
	count := 0
	for _, kind := range kinds {
		if !kind.IsDir() || !database.ValidSlug(kind.Name()) {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(root, kind.Name()))
		if err != nil {
			return 0, err
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, database.Ext) || !database.ValidSlug(strings.TrimSuffix(name, database.Ext)) {
				continue
			}
			data, err := os.ReadFile(filepath.Join(root, kind.Name(), name))
			if err != nil {
				return 0, err
			}
			f, err := w.Create(path.Join(kind.Name(), name))
			if err != nil {
				return 0, err
			}
			if _, err := f.Write(data); err != nil {
				return 0, err
			}
			count++
		}
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return count, nil
}

// GET /markdown/export downloads the whole content tree as a zip.
func (h *Handler) export(c *gin.Context) {
	buf := &bytes.Buffer{}
	if _, err := WriteArchive(h.store.Root(), buf); err != nil {
		response.InternalError(c, err)
		return
	}
	timestamp := time.Now().Format("20060102_150405")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="storefront-content-%s.zip"`, timestamp))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}
