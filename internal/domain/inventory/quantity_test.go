package inventory_test

import (
	"testing"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
)

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func tx(id string, typ int, value int64, date time.Time) *entity.QtyTransaction {
	return &entity.QtyTransaction{ID: id, Type: typ, Value: d(value), Date: date, CreatedAt: date}
}

func TestReplayQuantity_FechaDelAncla(t *testing.T) {
	q := inventory.ReplayQuantity([]*entity.QtyTransaction{
		tx("1", entity.TxInventory, 20, day(0)),
		tx("2", entity.TxPhysicalCount, 8, day(3)),
		tx("3", entity.TxIn, 2, day(4)),
	})
	assert.True(t, day(3).Equal(q.AnchoredAt))

	sinRecuento := inventory.ReplayQuantity([]*entity.QtyTransaction{tx("1", entity.TxIn, 2, day(0))})
	assert.True(t, sinRecuento.AnchoredAt.IsZero())
}

func TestReplayQuantity(t *testing.T) {
	tests := []struct {
		name        string
		txs         []*entity.QtyTransaction
		want        int64
		wantRaw     int64
		wantClamped bool
	}{
		{name: "libro vacío", want: 0},
		{
			name: "sin recuento parte de cero",
			txs: []*entity.QtyTransaction{
				tx("1", entity.TxIn, 10, day(0)),
				tx("2", entity.TxUsed, 3, day(1)),
			},
			want: 7, wantRaw: 7,
		},
		{
			name: "el último recuento ancla la cantidad",
			txs: []*entity.QtyTransaction{
				tx("1", entity.TxIn, 100, day(0)),
				tx("2", entity.TxUsed, 50, day(1)),
				tx("3", entity.TxInventory, 20, day(2)),
				tx("4", entity.TxIn, 5, day(3)),
				tx("5", entity.TxPerished, 2, day(4)),
				tx("6", entity.TxOther, 1, day(5)),
			},
			want: 22, wantRaw: 22,
		},
		{
			name: "el recuento físico también ancla",
			txs: []*entity.QtyTransaction{
				tx("1", entity.TxInventory, 20, day(0)),
				tx("2", entity.TxPhysicalCount, 8, day(3)),
				tx("3", entity.TxUsed, 2, day(4)),
			},
			want: 6, wantRaw: 6,
		},
		{
			name: "orden de entrada irrelevante",
			txs: []*entity.QtyTransaction{
				tx("3", entity.TxUsed, 4, day(5)),
				tx("1", entity.TxInventory, 10, day(1)),
				tx("2", entity.TxIn, 2, day(3)),
			},
			want: 8, wantRaw: 8,
		},
		{
			name: "negativo se recorta a cero",
			txs: []*entity.QtyTransaction{
				tx("1", entity.TxInventory, 2, day(0)),
				tx("2", entity.TxUsed, 5, day(1)),
			},
			want: 0, wantRaw: -3, wantClamped: true,
		},
		{
			name: "tipo desconocido se ignora",
			txs: []*entity.QtyTransaction{
				tx("1", entity.TxIn, 3, day(0)),
				tx("2", 64, 100, day(1)),
			},
			want: 3, wantRaw: 3,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.ReplayQuantity(tc.txs)
			assert.True(t, d(tc.want).Equal(got.Value), "valor: esperado %d, obtenido %s", tc.want, got.Value)
			assert.True(t, d(tc.wantRaw).Equal(got.Raw), "raw: esperado %d, obtenido %s", tc.wantRaw, got.Raw)
			assert.Equal(t, tc.wantClamped, got.Clamped)
		})
	}
}

func TestReplayQuantity_MismaFechaDesempataPorCreacionEId(t *testing.T) {
	same := day(2)
	count := tx("b", entity.TxInventory, 10, same)
	count.CreatedAt = same.Add(time.Minute)
	used := tx("a", entity.TxUsed, 4, same)
	used.CreatedAt = same
	in := tx("c", entity.TxIn, 1, same)
	in.CreatedAt = same.Add(time.Minute)

	// used (creado antes) queda detrás del recuento; in empata con el recuento y gana por ID.
	got := inventory.ReplayQuantity([]*entity.QtyTransaction{in, used, count})
	assert.True(t, d(11).Equal(got.Value), "obtenido %s", got.Value)
}

func TestReplayQuantity_NoModificaEntrada(t *testing.T) {
	txs := []*entity.QtyTransaction{
		tx("2", entity.TxUsed, 1, day(2)),
		tx("1", entity.TxIn, 5, day(1)),
	}
	inventory.ReplayQuantity(txs)
	assert.Equal(t, "2", txs[0].ID)
}
