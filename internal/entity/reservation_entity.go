package entity

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

type Reservation struct {
	Id            uint
	SessionId     string
	Guests        int
	ReservedFor   time.Time
	RequestedText string
	Status        ReservationStatus
	Metadata      map[string]interface{}
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
