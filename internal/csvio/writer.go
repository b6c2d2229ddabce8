package csvio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/heavyguana-aym/kithmonite/internal/ledger"
)

// Writer emits account snapshot rows. The header is written before the
// first row; amounts always carry four fractional digits.
type Writer struct {
	csv         *csv.Writer
	wroteHeader bool
}

// NewWriter wraps the sink.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// Write appends one snapshot row.
func (w *Writer) Write(s ledger.Snapshot) error {
	if !w.wroteHeader {
		if err := w.csv.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
			return err
		}
		w.wroteHeader = true
	}
	return w.csv.Write([]string{
		strconv.FormatUint(uint64(s.Client), 10),
		s.Available.String(),
		s.Held.String(),
		s.Total.String(),
		strconv.FormatBool(s.Locked),
	})
}

// Flush writes buffered rows to the sink and reports any write error.
func (w *Writer) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}
