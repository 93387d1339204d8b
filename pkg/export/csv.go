// Package export renders a project graph as tabular (CSV) or
// structured (JSON) output, per spec 4.6.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	ifcerrors "github.com/ifcinspect/ifcinspect/internal/errors"
	"github.com/ifcinspect/ifcinspect/pkg/ifcmodel"
)

// WriteCSV renders one row per element type — columns "Category",
// "Type Name", "Instance Count", "Global ID" — grouped and ordered by
// the category ordering the domain extractor already computed (spec
// 4.4 step 7), to path. UTF-8 output with RFC 4180 quoting via
// encoding/csv.
func WriteCSV(proj *ifcmodel.Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return ifcerrors.FileCreate(path, err)
	}

	if err := writeCSVTo(proj, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return ifcerrors.WriteError(path, err)
	}
	return nil
}

func writeCSVTo(proj *ifcmodel.Project, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Category", "Type Name", "Instance Count", "Global ID"}); err != nil {
		return ifcerrors.TabularWrite(err)
	}
	for _, cat := range proj.Categories {
		for _, t := range cat.Types {
			row := []string{
				cat.Name,
				t.Name,
				strconv.Itoa(t.InstanceCount),
				t.GlobalID,
			}
			if err := cw.Write(row); err != nil {
				return ifcerrors.TabularWrite(err)
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return ifcerrors.TabularWrite(err)
	}
	return nil
}
