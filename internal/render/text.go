package render

import (
	"fmt"
	"io"

	"github.com/julianstephens/offday/internal/models"
)

// Text writes every solution as a header line followed by its grid, the way the
// generate command prints them.
func Text(w io.Writer, sols []models.Solution, cat models.Catalog, opts GridOptions) error {
	for i, sol := range sols {
		if _, err := fmt.Fprintf(w, "\n%s\n%s\n", Header(i+1, sol), Grid(sol, cat, opts)); err != nil {
			return err
		}
	}
	return nil
}
