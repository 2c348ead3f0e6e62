package service

import (
	"fmt"

	"github.com/tofrito/till-api/internal/domain/entity"
	"github.com/tofrito/till-api/pkg/money"
	"github.com/tofrito/till-api/pkg/printer"
)

// PrinterService formats and prints the customer ticket after a
// checkout. Printing is best-effort: the checkout flow logs failures
// and carries on, because the sale is already in the ledger.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	width       int
	storeName   string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, printerType string, width int, storeName string) *PrinterService {
	if width <= 0 {
		width = 32
	}
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		width:       width,
		storeName:   storeName,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintTicket composes and prints the ticket for a transaction.
// Returns the receipt so the handler can render it as JSON when no
// printer is attached.
func (s *PrinterService) PrintTicket(tx *entity.Transaction) (*entity.Receipt, error) {
	receipt := s.buildReceipt(tx)

	data := s.formatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("ticket print failed: %w", err)
	}
	return receipt, nil
}

// TestPrint sends a test ticket to the printer.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header:       entity.ReceiptHeader{StoreName: s.storeName},
		TicketNumber: "0",
		Date:         "—",
		PaymentLabel: "Teste",
		Items: []entity.ReceiptItem{
			{Name: "Item de teste", Quantity: 1, Total: 1000},
		},
		Subtotal: 1000,
		Total:    1000,
	}

	data := s.formatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

func (s *PrinterService) buildReceipt(tx *entity.Transaction) *entity.Receipt {
	receipt := &entity.Receipt{
		Header:         entity.ReceiptHeader{StoreName: s.storeName},
		TicketNumber:   tx.TicketNumber,
		Date:           tx.CreatedAt.Format("02/01/2006 15:04"),
		PaymentLabel:   tx.PaymentMethod.Label(),
		Subtotal:       tx.Subtotal,
		Discount:       tx.Discount,
		Total:          tx.Total,
		AmountTendered: tx.AmountTendered,
		ChangeDue:      tx.ChangeDue,
	}
	for _, l := range tx.Lines {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:     l.Product.Name,
			Quantity: l.Quantity,
			Total:    l.Total(),
		})
	}
	return receipt
}

// formatReceipt renders a receipt into an ESC/POS byte stream.
func (s *PrinterService) formatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(r.Header.StoreName).
		SetBold(false)
	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	doc.SetAlign(printer.AlignLeft)
	doc.Text(r.Date)

	doc.TicketBanner("SENHA", r.TicketNumber)

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, money.Format(item.Total))
	}
	doc.Separator('-')
	doc.KeyValue("Subtotal", money.Format(r.Subtotal))
	if r.Discount > 0 {
		doc.KeyValue("Desconto", "-"+money.Format(r.Discount))
	}
	doc.SetBold(true)
	doc.KeyValue("Total", money.Format(r.Total))
	doc.SetBold(false)
	doc.KeyValue("Pagamento", r.PaymentLabel)
	if r.AmountTendered != nil {
		doc.KeyValue("Recebido", money.Format(*r.AmountTendered))
	}
	if r.ChangeDue != nil {
		doc.KeyValue("Troco", money.Format(*r.ChangeDue))
	}

	doc.FeedLines(1).
		SetAlign(printer.AlignCenter).
		Text("Obrigado e volte sempre!").
		FeedLines(3).
		Cut()

	return doc.Bytes()
}
