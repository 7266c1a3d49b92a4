package wizard

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"

	"github.com/carehome/carehome-api/internal/domain/notification"
)

// Result is returned by every room finder endpoint
type Result struct {
	SessionID     uuid.UUID                   `json:"session_id"`
	View          View                        `json:"view"`
	Notifications []notification.Notification `json:"notifications"`
}

// SetFieldsRequest maps input names (start_date, end_date, final_price) to raw values
type SetFieldsRequest map[string]string

// SelectRoomRequest for POST /room-finder/{sessionID}/select
type SelectRoomRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

// AdjustPriceRequest for PUT /room-finder/{sessionID}/price
type AdjustPriceRequest struct {
	FinalPrice *PriceInput `json:"final_price" validate:"required"`
}

// PriceInput accepts a JSON number or a numeric-looking string such as "£475.00"
type PriceInput float64

func (p *PriceInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := ParsePrice(s)
		if err != nil {
			return err
		}
		*p = PriceInput(v)
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return &ValidationError{Field: "final_price", Message: "invalid price " + string(data)}
	}
	*p = PriceInput(v)
	return nil
}
