package curriculum

import (
	"sync/atomic"
)

// Holder, aktif kazanım tablosuna atomik bir işaretçi tutar. Okuyucular
// kilitsiz çalışır; arka plandaki yenileme tam yeniden kurulan tabloyu
// Swap ile devreye alır.
type Holder struct {
	table atomic.Pointer[Table]
}

// NewHolder creates a holder around the given table. A nil table is replaced
// with EmptyTable so lookups stay total.
func NewHolder(table *Table) *Holder {
	h := &Holder{}
	if table == nil {
		table = EmptyTable()
	}
	h.table.Store(table)
	return h
}

// Current returns the active table.
func (h *Holder) Current() *Table {
	return h.table.Load()
}

// Swap replaces the active table. Nil swaps are ignored so a failed refresh
// keeps serving the previous table.
func (h *Holder) Swap(table *Table) {
	if table == nil {
		return
	}
	h.table.Store(table)
}

// Lookup resolves against the active table.
func (h *Holder) Lookup(subject Subject, grade Grade, week int) LookupResult {
	return h.Current().Lookup(subject, grade, week)
}
