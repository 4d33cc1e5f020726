// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"

	"github.com/gingfrederik/docx"

	"github.com/pdiddy/ai-newsdesk/pkg/types"
)

// WriteDOCX saves records as a Word brief at path: a heading, then per
// record the title, date and link, summary and excerpt.
func WriteDOCX(path string, records []types.CuratedRecord) error {
	f := docx.NewFile()

	heading := f.AddParagraph().AddText(SheetName)
	heading.Size(20)
	f.AddParagraph()

	if len(records) == 0 {
		f.AddParagraph().AddText("本次检索未收录任何新闻。")
	}

	for i, r := range records {
		title := f.AddParagraph().AddText(fmt.Sprintf("%d. %s", i+1, r.Title))
		title.Size(16)

		meta := f.AddParagraph().AddText(fmt.Sprintf("%s | %s", r.Date, r.URL))
		meta.Size(10)
		meta.Color("808080")

		f.AddParagraph().AddText(Columns[2] + "：" + r.Summary)

		excerpt := f.AddParagraph().AddText(Columns[4] + "：" + r.Excerpt)
		excerpt.Size(10)
		excerpt.Color("606060")

		f.AddParagraph()
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
