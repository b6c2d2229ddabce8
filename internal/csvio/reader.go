// Package csvio reads transaction records from and writes account snapshots
// to tabular streams. It carries no business logic: rows come out as
// untrusted ledger.Records and snapshots go in as already-derived state.
package csvio

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/heavyguana-aym/kithmonite/internal/ledger"
)

// ErrMissingHeader indicates the input has no usable header row.
var ErrMissingHeader = errors.New("input is missing the type,client,tx header")

// Reader streams transaction records from a CSV source. Malformed rows are
// skipped with a warning, never fatal; only an unreadable source aborts.
type Reader struct {
	csv  *csv.Reader
	log  *slog.Logger
	cols map[string]int
	line int
}

// NewReader wraps the source. Column order is taken from the header row;
// every field is trimmed of surrounding whitespace.
func NewReader(r io.Reader, log *slog.Logger) *Reader {
	c := csv.NewReader(r)
	c.FieldsPerRecord = -1
	c.TrimLeadingSpace = true
	return &Reader{csv: c, log: log}
}

// Read returns the next well-formed record, or io.EOF when the source is
// exhausted.
func (r *Reader) Read() (ledger.Record, error) {
	if r.cols == nil {
		if err := r.readHeader(); err != nil {
			return ledger.Record{}, err
		}
	}
	for {
		row, err := r.csv.Read()
		r.line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				r.log.Warn("skipping unparseable row", "line", r.line, "err", err)
				continue
			}
			return ledger.Record{}, err
		}
		rec, ok := r.record(row)
		if !ok {
			continue
		}
		return rec, nil
	}
}

func (r *Reader) readHeader() error {
	row, err := r.csv.Read()
	if err != nil {
		if err == io.EOF {
			return ErrMissingHeader
		}
		return err
	}
	r.line++
	cols := make(map[string]int, len(row))
	for i, name := range row {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"type", "client", "tx"} {
		if _, ok := cols[required]; !ok {
			return ErrMissingHeader
		}
	}
	r.cols = cols
	return nil
}

// record maps a raw row onto a Record. Rows with a missing or non-numeric
// client or tx are dropped here; amount validation is the domain's concern.
func (r *Reader) record(row []string) (ledger.Record, bool) {
	field := func(name string) (string, bool) {
		i, ok := r.cols[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	kind, _ := field("type")
	clientRaw, ok := field("client")
	if !ok {
		r.log.Warn("skipping row without client", "line", r.line)
		return ledger.Record{}, false
	}
	client, err := strconv.ParseUint(clientRaw, 10, 16)
	if err != nil {
		r.log.Warn("skipping row with bad client id", "line", r.line, "client", clientRaw)
		return ledger.Record{}, false
	}
	txRaw, ok := field("tx")
	if !ok {
		r.log.Warn("skipping row without tx", "line", r.line)
		return ledger.Record{}, false
	}
	tx, err := strconv.ParseUint(txRaw, 10, 32)
	if err != nil {
		r.log.Warn("skipping row with bad tx id", "line", r.line, "tx", txRaw)
		return ledger.Record{}, false
	}
	amount, _ := field("amount")

	return ledger.Record{
		Type:   kind,
		Client: uint16(client),
		Tx:     uint32(tx),
		Amount: amount,
	}, true
}
