package request

// UnlockDiscountRequest opens the discount gate with the manager passcode.
type UnlockDiscountRequest struct {
	Passcode string `json:"passcode" binding:"required"`
}

// StageDiscountRequest stages the discount input as typed. Invalid or
// empty values parse as zero at confirm time.
type StageDiscountRequest struct {
	Value string `json:"value"`
}

// SelectMethodRequest picks the payment method: "credit", "debit",
// "cash", or "pix".
type SelectMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

// TenderKeyRequest applies one keypad action to the cash tender
// buffer: a digit, ".", "backspace", or "clear".
type TenderKeyRequest struct {
	Key string `json:"key" binding:"required"`
}

// TenderQuickAddRequest adds a fixed denomination (in centavos) to the
// tendered amount.
type TenderQuickAddRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}
