package enum

import (
	"encoding/json"
)

// TransactionStatus represents the financial status of a transaction.
// The only legal transition is Completed -> Cancelled.
type TransactionStatus int

const (
	StatusCompleted TransactionStatus = 0
	StatusCancelled TransactionStatus = 1
)

func (s TransactionStatus) String() string {
	return [...]string{"completed", "cancelled"}[s]
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TransactionStatus(i)
		return nil
	}
	switch str {
	case "completed":
		*s = StatusCompleted
	case "cancelled":
		*s = StatusCancelled
	}
	return nil
}
