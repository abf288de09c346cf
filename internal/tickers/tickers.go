// Package tickers loads the known-symbol catalog used for autocomplete in
// the open-ticker prompt.
package tickers

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Record is one catalog row: a symbol, its display name, and the asset
// class (Stock, ETF, Commodity, ...).
type Record struct {
	Symbol string
	Name   string
	Kind   string
}

// Catalog is the loaded symbol list. It is read-only after Load.
type Catalog struct {
	records []Record
}

// Load reads a CSV catalog with Ticker,Name,Type columns. A missing file is
// not an error; the prompt simply has nothing to suggest.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Catalog{}, nil
		}
		return nil, fmt.Errorf("open ticker catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads catalog rows from r. The first row is a header; column order
// is resolved by header name so extra columns are tolerated.
func Parse(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return &Catalog{}, nil
		}
		return nil, fmt.Errorf("read catalog header: %w", err)
	}

	symCol, nameCol, kindCol := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "ticker", "symbol":
			symCol = i
		case "name":
			nameCol = i
		case "type", "kind":
			kindCol = i
		}
	}
	if symCol < 0 {
		return nil, fmt.Errorf("catalog header missing Ticker column")
	}

	c := &Catalog{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}
		if symCol >= len(row) || strings.TrimSpace(row[symCol]) == "" {
			continue
		}
		rec := Record{Symbol: strings.ToUpper(strings.TrimSpace(row[symCol]))}
		if nameCol >= 0 && nameCol < len(row) {
			rec.Name = strings.TrimSpace(row[nameCol])
		}
		if kindCol >= 0 && kindCol < len(row) {
			rec.Kind = strings.TrimSpace(row[kindCol])
		}
		c.records = append(c.records, rec)
	}
	return c, nil
}

// Len reports the catalog size.
func (c *Catalog) Len() int { return len(c.records) }

// All returns every record in file order.
func (c *Catalog) All() []Record { return c.records }

// Lookup finds a record by exact symbol.
func (c *Catalog) Lookup(symbol string) (Record, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	for _, r := range c.records {
		if r.Symbol == symbol {
			return r, true
		}
	}
	return Record{}, false
}

// source adapts the catalog for fuzzy matching over "SYMBOL Name".
type source []Record

func (s source) String(i int) string { return s[i].Symbol + " " + s[i].Name }
func (s source) Len() int            { return len(s) }

// Search returns records fuzzy-ranked against query. An empty query returns
// the full catalog so the prompt can show a browsable list.
func (c *Catalog) Search(query string) []Record {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.records
	}
	matches := fuzzy.FindFrom(query, source(c.records))
	out := make([]Record, 0, len(matches))
	for _, m := range matches {
		out = append(out, c.records[m.Index])
	}
	return out
}
