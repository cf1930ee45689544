/**
* Name: 			renderer.go
* Description: 		모델 출력 텍스트를 A4 PDF로 기록
* Workflow: 		줄 단위 문단 분리, 자동 페이지 나눔, 데이터 디렉터리에 저장
 */
package document

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"LeraAssistant/internal/artifact"
)

const (
	fontSize   = 11.0
	lineHeight = 6.0
	paraGap    = 2.0
	margin     = 20.0
)

type Document struct {
	Path       string
	Paragraphs int
	Pages      int
}

type Renderer struct {
	outDir   string
	fontPath string
}

// fontPath가 있으면 해당 UTF-8 TTF 사용, 없으면 Helvetica(cp1252)
func NewRenderer(outDir, fontPath string) *Renderer {
	return &Renderer{outDir: outDir, fontPath: fontPath}
}

// 줄바꿈 단위로 문단을 나눠 새 PDF에 기록
// 빈 줄도 문단 하나로 셈
func (r *Renderer) Render(text string) (Document, error) {
	paragraphs := strings.Split(text, "\n")

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)

	family := "Helvetica"
	encode := toCP1252
	if r.fontPath != "" {
		family = "body"
		pdf.AddUTF8Font(family, "", r.fontPath)
		encode = func(s string) string { return s }
	}
	pdf.SetFont(family, "", fontSize)
	pdf.AddPage()

	for _, p := range paragraphs {
		p = strings.TrimRight(p, "\r")
		if strings.TrimSpace(p) == "" {
			pdf.Ln(lineHeight)
			continue
		}
		pdf.MultiCell(0, lineHeight, encode(p), "", "L", false)
		pdf.Ln(paraGap)
	}

	if pdf.Err() {
		return Document{}, fmt.Errorf("Render(): layout failed: %w", pdf.Error())
	}

	pages := pdf.PageCount()
	path, err := artifact.NewPath(r.outDir, ".pdf")
	if err != nil {
		return Document{}, err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return Document{}, fmt.Errorf("Render(): failed to write %s: %w", path, err)
	}
	return Document{Path: path, Paragraphs: len(paragraphs), Pages: pages}, nil
}

// cp1252에 없는 터키어 문자는 가장 가까운 라틴 문자로 대체
var fallback = map[rune]rune{
	'ğ': 'g', 'Ğ': 'G',
	'ş': 's', 'Ş': 'S',
	'ı': 'i', 'İ': 'I',
}

func toCP1252(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
			continue
		}
		if alt, ok := fallback[r]; ok {
			b.WriteByte(byte(alt))
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}
