package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tofrito/till-api/internal/domain/entity"
	"github.com/tofrito/till-api/internal/domain/enum"
	"github.com/tofrito/till-api/pkg/utils"
)

// capturePrinter records printed bytes instead of talking to hardware.
type capturePrinter struct {
	jobs [][]byte
	fail bool
}

func (p *capturePrinter) Print(data []byte) error {
	if p.fail {
		return errors.New("paper jam")
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *capturePrinter) Close() error      { return nil }
func (p *capturePrinter) IsConnected() bool { return !p.fail }

func sampleCashTransaction() *entity.Transaction {
	tendered := int64(5000)
	change := int64(710)
	return &entity.Transaction{
		ID:           utils.NewUUID(),
		TicketNumber: "7",
		CreatedAt:    time.Date(2026, 8, 29, 12, 30, 0, 0, time.Local),
		Lines: []entity.CartLine{
			{Product: entity.Product{ID: "1", Name: "X-Tudo Monstro", Price: 3290}, Quantity: 1},
			{Product: entity.Product{ID: "5", Name: "Coxinha de Frango", Price: 850}, Quantity: 2},
		},
		Subtotal:       4990,
		Discount:       700,
		Total:          4290,
		PaymentMethod:  enum.PaymentCash,
		Status:         enum.StatusCompleted,
		AmountTendered: &tendered,
		ChangeDue:      &change,
	}
}

func TestPrintTicket_RendersTicketAndCashDetails(t *testing.T) {
	cp := &capturePrinter{}
	svc := NewPrinterService(cp, "usb", 32, "TO FRITO!")

	receipt, err := svc.PrintTicket(sampleCashTransaction())
	require.NoError(t, err)
	require.Len(t, cp.jobs, 1)

	out := string(cp.jobs[0])
	assert.Contains(t, out, "TO FRITO!")
	assert.Contains(t, out, "SENHA")
	assert.Contains(t, out, "X-Tudo Monstro")
	assert.Contains(t, out, "Desconto")
	assert.Contains(t, out, "Dinheiro")
	assert.Contains(t, out, "Recebido")
	assert.Contains(t, out, "Troco")

	assert.Equal(t, "7", receipt.TicketNumber)
	assert.Equal(t, "29/08/2026 12:30", receipt.Date)
	assert.Len(t, receipt.Items, 2)
}

func TestPrintTicket_CardOmitsCashLines(t *testing.T) {
	cp := &capturePrinter{}
	svc := NewPrinterService(cp, "usb", 32, "TO FRITO!")

	tx := sampleCashTransaction()
	tx.PaymentMethod = enum.PaymentCredit
	tx.AmountTendered = nil
	tx.ChangeDue = nil

	_, err := svc.PrintTicket(tx)
	require.NoError(t, err)

	out := string(cp.jobs[0])
	assert.NotContains(t, out, "Recebido")
	assert.NotContains(t, out, "Troco")
	assert.Contains(t, out, "Crédito")
}

func TestPrintTicket_ReturnsReceiptEvenWhenPrintFails(t *testing.T) {
	svc := NewPrinterService(&capturePrinter{fail: true}, "usb", 32, "TO FRITO!")

	receipt, err := svc.PrintTicket(sampleCashTransaction())
	assert.Error(t, err)
	require.NotNil(t, receipt)
	assert.Equal(t, "7", receipt.TicketNumber)
}

func TestPrinterGetStatus(t *testing.T) {
	svc := NewPrinterService(&capturePrinter{}, "usb", 32, "TO FRITO!")
	status := svc.GetStatus()
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
	assert.Equal(t, "usb", status.Type)

	svc = NewPrinterService(&capturePrinter{fail: true}, "none", 32, "TO FRITO!")
	status = svc.GetStatus()
	assert.False(t, status.Configured)
	assert.False(t, status.Connected)
}
