package inventory

import (
	"sort"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Element datos de catálogo de un elemento de referencia.
type Element struct {
	Key   ElementKey
	Name  string
	Group string
}

// StockLine una unidad en stock con su cantidad reproducida.
type StockLine struct {
	ItemID       string
	Name         string
	Packing      string
	ExpDate      *time.Time
	Quantity     decimal.Decimal
	Expiry       ExpiryStatus
	Nc           bool
	LocationID   string
	LocationPath string
}

// ElementStatus estado agregado de un elemento frente a sus requerimientos.
type ElementStatus struct {
	Element
	Required        decimal.Decimal
	Current         decimal.Decimal // stock no caducado
	ExpiredQuantity decimal.Decimal
	Missing         decimal.Decimal
	Contributions   []Contribution
	Lines           []StockLine
	HasDateExpired  bool
	HasDateWarning  bool
	HasNc           bool
	Shortage        bool
}

// StockInput un Item con su libro de movimientos.
type StockInput struct {
	Item         *entity.Item
	Transactions []*entity.QtyTransaction
}

// BuildInput datos de entrada de BuildElementStatuses para un dominio (o un contenedor).
type BuildInput struct {
	Catalog       map[ElementKey]Element
	Requirements  map[ElementKey]Requirement
	Stock         []StockInput
	LocationPaths map[string]string
	Today         time.Time
	WarningDays   int
	// Language para ordenar por nombre; language.Und usa el orden raíz de Unicode.
	Language language.Tag
	// OnClamped se llama por cada Item cuyo libro da una cantidad negativa (opcional).
	OnClamped func(item *entity.Item, q Quantity)
}

// BuildElementStatuses calcula el estado de cada elemento con requerimiento o con stock.
// Las líneas de cantidad cero no se listan ni cuentan para los indicadores.
func BuildElementStatuses(in BuildInput) []ElementStatus {
	byKey := make(map[ElementKey]*ElementStatus)
	get := func(key ElementKey) *ElementStatus {
		if st, ok := byKey[key]; ok {
			return st
		}
		el, ok := in.Catalog[key]
		if !ok {
			el = Element{Key: key, Name: key.BaseID}
		}
		st := &ElementStatus{
			Element:         el,
			Required:        decimal.Zero,
			Current:         decimal.Zero,
			ExpiredQuantity: decimal.Zero,
			Missing:         decimal.Zero,
		}
		byKey[key] = st
		return st
	}

	for key, req := range in.Requirements {
		st := get(key)
		st.Required = req.Required
		st.Contributions = req.Contributions
	}

	for _, s := range in.Stock {
		if s.Item == nil {
			continue
		}
		q := ReplayQuantity(s.Transactions)
		if q.Clamped && in.OnClamped != nil {
			in.OnClamped(s.Item, q)
		}
		if !q.Value.IsPositive() {
			continue
		}
		st := get(ElementKey{BaseKind: s.Item.BaseKind, BaseID: s.Item.BaseID})
		line := StockLine{
			ItemID:       s.Item.ID,
			Name:         s.Item.Name,
			Packing:      s.Item.Packing,
			ExpDate:      s.Item.ExpDate,
			Quantity:     q.Value,
			Expiry:       ClassifyExpiry(s.Item.ExpDate, in.Today, in.WarningDays),
			Nc:           s.Item.HasNc(),
			LocationID:   s.Item.LocationID,
			LocationPath: in.LocationPaths[s.Item.LocationID],
		}
		st.Lines = append(st.Lines, line)
		switch line.Expiry {
		case ExpiryExpired:
			st.HasDateExpired = true
			st.ExpiredQuantity = st.ExpiredQuantity.Add(line.Quantity)
		case ExpiryWarning:
			st.HasDateWarning = true
			st.Current = st.Current.Add(line.Quantity)
		default:
			st.Current = st.Current.Add(line.Quantity)
		}
		if line.Nc {
			st.HasNc = true
		}
	}

	out := make([]ElementStatus, 0, len(byKey))
	for _, st := range byKey {
		missing := st.Required.Sub(st.Current)
		if missing.IsPositive() {
			st.Missing = missing
			st.Shortage = true
		}
		sortLines(st.Lines)
		out = append(out, *st)
	}
	sortStatuses(out, in.Language)
	return out
}

// sortLines: primero las que caducan antes; sin fecha al final.
func sortLines(lines []StockLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i].ExpDate, lines[j].ExpDate
		switch {
		case a == nil && b == nil:
			return lines[i].ItemID < lines[j].ItemID
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.Before(*b)
		}
		return lines[i].ItemID < lines[j].ItemID
	})
}

func sortStatuses(out []ElementStatus, tag language.Tag) {
	col := collate.New(tag, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if c := col.CompareString(a.Group, b.Group); c != 0 {
			return c < 0
		}
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c < 0
		}
		return a.Key.BaseID < b.Key.BaseID
	})
}

// Summary conteos de un conjunto de estados.
type Summary struct {
	Elements   int
	Shortages  int
	Expired    int
	Warnings   int
	NonConform int
}

// Summarize cuenta elementos con faltante, caducados, en aviso y no conformes.
func Summarize(statuses []ElementStatus) Summary {
	s := Summary{Elements: len(statuses)}
	for _, st := range statuses {
		if st.Shortage {
			s.Shortages++
		}
		if st.HasDateExpired {
			s.Expired++
		}
		if st.HasDateWarning {
			s.Warnings++
		}
		if st.HasNc {
			s.NonConform++
		}
	}
	return s
}

// Add acumula otro resumen.
func (s Summary) Add(o Summary) Summary {
	return Summary{
		Elements:   s.Elements + o.Elements,
		Shortages:  s.Shortages + o.Shortages,
		Expired:    s.Expired + o.Expired,
		Warnings:   s.Warnings + o.Warnings,
		NonConform: s.NonConform + o.NonConform,
	}
}
