package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/me/taskplan/internal/features"
	"github.com/me/taskplan/pkg/model"
)

// WriteCSV writes samples with a header of the feature columns followed by the
// label column for kind.
func WriteCSV(w io.Writer, kind model.DatasetKind, samples []model.Sample) error {
	cw := csv.NewWriter(w)
	names := features.Names()

	header := append(append([]string{}, names...), kind.LabelColumn())
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, s := range samples {
		for i, name := range names {
			row[i] = strconv.FormatFloat(s.Features[name], 'g', -1, 64)
		}
		row[len(names)] = strconv.Itoa(s.Label)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
