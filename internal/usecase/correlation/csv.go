package correlation

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/VirTrivedi/Stock-Price-Modeling-Analytics/pkg/errors"
)

// WriteCSV writes pair results to path as a three-column CSV artifact with
// fixed four-decimal coefficients.
func WriteCSV(path string, results []PairResult) error {
	out, err := os.Create(path)
	if err != nil {
		return errors.NewTracer(fmt.Sprintf("open correlations output %s", path)).
			Wrap(errors.ErrOutputUnwritable)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.Write([]string{"symbol1", "symbol2", "overall_correlation"}); err != nil {
		return errors.NewTracer("write correlations header").Wrap(errors.ErrOutputUnwritable)
	}
	for _, result := range results {
		row := []string{
			result.Symbol1,
			result.Symbol2,
			fmt.Sprintf("%.4f", result.Overall),
		}
		if err := writer.Write(row); err != nil {
			return errors.NewTracer("write correlations row").Wrap(errors.ErrOutputUnwritable)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewTracer("flush correlations output").Wrap(errors.ErrOutputUnwritable)
	}
	return nil
}
