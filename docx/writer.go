package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// WriteTables записує таблиці у новий .docx файл. Використовується генератором
// тестових даних та тестами читача; стилі не пишуться, лише структура
// tbl/tr/tc з абзацами (кожен рядок тексту комірки — окремий абзац).
func WriteTables(path string, tables []Table) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("не вдалося створити %s: %w", path, err)
	}
	defer out.Close()

	archive := zip.NewWriter(out)

	entries := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML(tables)},
	}

	for _, entry := range entries {
		w, err := archive.Create(entry.name)
		if err != nil {
			return fmt.Errorf("не вдалося додати %s до архіву: %w", entry.name, err)
		}
		if _, err := w.Write([]byte(entry.body)); err != nil {
			return fmt.Errorf("не вдалося записати %s: %w", entry.name, err)
		}
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("не вдалося закрити архів: %w", err)
	}
	return nil
}

func documentXML(tables []Table) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	for _, table := range tables {
		b.WriteString(`<w:tbl>`)
		for _, row := range table.Rows {
			b.WriteString(`<w:tr>`)
			for _, cell := range row {
				b.WriteString(`<w:tc>`)
				for _, line := range strings.Split(cell, "\n") {
					b.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
					_ = xml.EscapeText(&b, []byte(line))
					b.WriteString(`</w:t></w:r></w:p>`)
				}
				b.WriteString(`</w:tc>`)
			}
			b.WriteString(`</w:tr>`)
		}
		b.WriteString(`</w:tbl>`)
		// Word вимагає абзац між таблицями, інакше вони зливаються в одну.
		b.WriteString(`<w:p/>`)
	}

	b.WriteString(`</w:body></w:document>`)
	return b.String()
}
