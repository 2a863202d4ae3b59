package overview

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
	"github.com/tally-app/tally/pkg/ledger"
)

type SectionsRenderer interface {
	RenderSections(sections []ledger.Section) (string, error)
}

type CsvSectionsRendererImpl struct {
}

func NewCsvSectionsRenderer() *CsvSectionsRendererImpl {
	return &CsvSectionsRendererImpl{}
}

// RenderSections writes one row per transaction, sections in their display order.
// Amounts are signed: expenses are negative.
func (r *CsvSectionsRendererImpl) RenderSections(sections []ledger.Section) (string, error) {
	data := [][]string{{"Section", "Date", "Name", "Type", "Category", "Amount"}}
	for _, section := range sections {
		for _, t := range section.Items {
			data = append(data, []string{
				section.Title,
				t.Date.In(section.Date.Location()).Format("02/01/2006 15:04"),
				t.Name,
				string(t.Type),
				categoryLabel(t.CategoryEmoji, t.CategoryName),
				t.Signed().StringFixed(2),
			})
		}
	}

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	if err := writer.WriteAll(data); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}
	return b.String(), nil
}

func categoryLabel(emoji, name string) string {
	switch {
	case emoji == "":
		return name
	case name == "":
		return emoji
	}
	return emoji + " " + name
}
