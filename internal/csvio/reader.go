package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/transactions-processor/internal/models"
)

// Precision is the number of fractional digits kept for amounts.
const Precision = 4

var (
	ErrMissingColumn = errors.New("csvio: missing column")
	ErrMissingAmount = errors.New("csvio: amount is required")
)

// DecodeError reports a row that could not be turned into a transaction.
// The reader can keep going after it.
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("csvio: line %d: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type columns struct {
	typ, client, tx, amount int
}

// Reader decodes `type,client,tx,amount` records one at a time.
type Reader struct {
	r    *csv.Reader
	cols columns
}

// NewReader reads and validates the header row. The amount column may be
// absent when the input holds no deposits or withdrawals.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csvio: empty input: %w", err)
		}
		return nil, fmt.Errorf("csvio: read header: %w", err)
	}

	cols := columns{typ: -1, client: -1, tx: -1, amount: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "type":
			cols.typ = i
		case "client":
			cols.client = i
		case "tx":
			cols.tx = i
		case "amount":
			cols.amount = i
		}
	}
	for name, idx := range map[string]int{"type": cols.typ, "client": cols.client, "tx": cols.tx} {
		if idx < 0 {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}

	return &Reader{r: cr, cols: cols}, nil
}

// Read returns the next transaction, io.EOF at the end of input, or a
// *DecodeError for a malformed row. Any other error comes from the
// underlying reader.
func (r *Reader) Read() (models.Transaction, error) {
	record, err := r.r.Read()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return models.Transaction{}, &DecodeError{Line: parseErr.Line, Err: parseErr.Err}
		}
		return models.Transaction{}, err
	}

	line, _ := r.r.FieldPos(0)
	tx, err := r.decode(record)
	if err != nil {
		return models.Transaction{}, &DecodeError{Line: line, Err: err}
	}
	return tx, nil
}

func (r *Reader) decode(record []string) (models.Transaction, error) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	typ, err := models.ParseTransactionType(strings.ToLower(field(r.cols.typ)))
	if err != nil {
		return models.Transaction{}, err
	}

	client, err := strconv.ParseUint(field(r.cols.client), 10, 16)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid client: %w", err)
	}

	id, err := strconv.ParseUint(field(r.cols.tx), 10, 32)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid tx: %w", err)
	}

	if !typ.MovesMoney() {
		return models.NewReference(typ, uint16(client), uint32(id)), nil
	}

	raw := field(r.cols.amount)
	if raw == "" {
		return models.Transaction{}, fmt.Errorf("%w for %s", ErrMissingAmount, typ)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("invalid amount %q: %w", raw, err)
	}

	return models.Transaction{
		Type:     typ,
		ClientID: uint16(client),
		ID:       uint32(id),
		Amount:   amount.Round(Precision),
	}, nil
}
