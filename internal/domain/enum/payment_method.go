package enum

import (
	"encoding/json"
	"fmt"
)

// PaymentMethod represents how a transaction was paid
type PaymentMethod int

const (
	PaymentCredit PaymentMethod = 0
	PaymentDebit  PaymentMethod = 1
	PaymentCash   PaymentMethod = 2
	PaymentPix    PaymentMethod = 3
)

func (m PaymentMethod) String() string {
	switch m {
	case PaymentCredit:
		return "credit"
	case PaymentDebit:
		return "debit"
	case PaymentCash:
		return "cash"
	case PaymentPix:
		return "pix"
	}
	return "unknown"
}

// Label returns the customer-facing Portuguese label used on tickets
// and in the reports breakdown.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCredit:
		return "Crédito"
	case PaymentDebit:
		return "Débito"
	case PaymentCash:
		return "Dinheiro"
	case PaymentPix:
		return "Pix"
	}
	return "Desconhecido"
}

// ParsePaymentMethod parses the wire form ("credit", "debit", "cash", "pix").
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch s {
	case "credit":
		return PaymentCredit, nil
	case "debit":
		return PaymentDebit, nil
	case "cash":
		return PaymentCash, nil
	case "pix":
		return PaymentPix, nil
	}
	return 0, fmt.Errorf("unknown payment method %q", s)
}

// AllPaymentMethods returns every method, in breakdown display order.
func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCredit, PaymentDebit, PaymentCash, PaymentPix}
}

func (m PaymentMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMethod(i)
		return nil
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
