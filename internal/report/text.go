package report

import (
	"fmt"
	"io"

	"github.com/cwbudde/tspga/internal/ga"
	"github.com/cwbudde/tspga/internal/tour"
)

// WriteResult prints the best tour and its length in the program's
// human-readable format.
func WriteResult(w io.Writer, inst *tour.Instance, best ga.Candidate) error {
	if _, err := fmt.Fprintf(w, "Best tour: %s\n", inst.Format(best.Path)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Shortest distance: %.2f\n", best.Distance)
	return err
}
