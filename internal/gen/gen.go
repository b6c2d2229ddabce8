// Package gen produces random transaction histories. Correctness of the
// generated data is deliberately not guaranteed: amounts can be negative,
// disputes can reference nothing, and chargebacks can arrive out of order.
// It exists to stress the processor, which must absorb all of it without
// panicking.
package gen

import (
	"encoding/csv"
	"io"
	"math/rand/v2"
	"strconv"

	"github.com/govalues/decimal"

	"github.com/heavyguana-aym/kithmonite/internal/ledger"
)

var kinds = []string{"deposit", "withdrawal", "dispute", "resolve", "chargeback"}

// Generator emits rows for a fixed number of clients, keeping a per-client
// buffer so that disputes can reference earlier transactions of the same
// client.
type Generator struct {
	rng       *rand.Rand
	clients   int
	perClient int
}

// New seeds a generator producing perClient rows for each of clients clients.
func New(seed uint64, clients, perClient int) *Generator {
	return &Generator{
		rng:       rand.New(rand.NewPCG(seed, seed)),
		clients:   clients,
		perClient: perClient,
	}
}

// WriteTo streams the generated history as CSV, header included.
func (g *Generator) WriteTo(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"type", "client", "tx", "amount"}); err != nil {
		return err
	}
	history := make([]ledger.Record, 0, g.perClient)
	for client := 0; client < g.clients; client++ {
		history = history[:0]
		for i := 0; i < g.perClient; i++ {
			rec := g.next(uint16(client), history)
			history = append(history, rec)
			if err := cw.Write([]string{
				rec.Type,
				strconv.FormatUint(uint64(rec.Client), 10),
				strconv.FormatUint(uint64(rec.Tx), 10),
				rec.Amount,
			}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func (g *Generator) next(client uint16, history []ledger.Record) ledger.Record {
	kind := kinds[g.rng.IntN(len(kinds))]
	switch kind {
	case "deposit", "withdrawal":
		return ledger.Record{
			Type:   kind,
			Client: client,
			Tx:     g.rng.Uint32(),
			Amount: g.amount(),
		}
	case "dispute":
		return ledger.Record{Type: kind, Client: client, Tx: g.pick(history, "deposit")}
	default:
		// resolve/chargeback reference a past dispute, when one exists
		return ledger.Record{Type: kind, Client: client, Tx: g.pick(history, "dispute")}
	}
}

// amount renders a random scale-5 decimal rounded to 4 dp. Roughly half the
// values are negative, which the validator is expected to reject.
func (g *Generator) amount() string {
	coef := g.rng.Int64N(2_000_000_000) - 1_000_000_000
	d, _ := decimal.New(coef, 5)
	return d.Round(4).String()
}

// pick chooses the tx id of a random past record of the wanted kind, or 0
// when the client has none yet.
func (g *Generator) pick(history []ledger.Record, wanted string) uint32 {
	candidates := make([]uint32, 0, len(history))
	for _, rec := range history {
		if rec.Type == wanted {
			candidates = append(candidates, rec.Tx)
		}
	}
	if len(candidates) == 0 {
		return 0
	}
	return candidates[g.rng.IntN(len(candidates))]
}
