// Package export converts session results to and from flat tabular form.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/prospectkit/prospect/models"
)

// Columns is the fixed export header, one row per processed domain.
var Columns = []string{
	"Domain",
	"Emails",
	"Phones",
	"Social",
	"Title",
	"Meta Description",
	"Revenue",
	"Founder/CEO",
	"Tags",
	"Lead Score",
}

// WriteCSV renders outcomes as CSV. Sets are sorted lexicographically here,
// at the export boundary only, so output is stable; the in-memory sets
// stay order-free. Error outcomes appear as a row with just the domain, so
// a failed domain is still visible in the export.
func WriteCSV(w io.Writer, outcomes []*models.Outcome) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for _, o := range outcomes {
		if o == nil {
			continue
		}

		if o.Lead == nil {
			row := make([]string, len(Columns))
			row[0] = o.Domain
			row[len(row)-1] = "0"
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("export: write row: %w", err)
			}
			continue
		}

		l := o.Lead
		row := []string{
			l.Domain,
			joinSorted(l.Emails),
			joinSorted(l.Phones),
			joinSorted(l.SocialLinks),
			l.Title,
			l.Description,
			orNA(l.Revenue),
			orNA(l.Founders),
			strings.Join(l.Tags, ", "),
			strconv.Itoa(l.Score),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func joinSorted(set []string) string {
	sorted := make([]string, len(set))
	copy(sorted, set)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
