package trip

import "time"

// RoleOwner is implied by Trip.OwnerID; membership rows carry free-form
// role names for everyone else.
const RoleOwner = "owner"

type Trip struct {
	ID          uint      `gorm:"primaryKey"`
	OwnerID     uint      `gorm:"index;not null"`
	Name        string    `gorm:"not null"`
	Destination string    `gorm:"not null"`
	StartDate   time.Time `gorm:"type:date;not null"`
	EndDate     time.Time `gorm:"type:date;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type TripMember struct {
	ID       uint      `gorm:"primaryKey"`
	TripID   uint      `gorm:"index:idx_trip_members_pair,unique;not null"`
	UserID   uint      `gorm:"index:idx_trip_members_pair,unique;not null"`
	Role     string    `gorm:"type:varchar(32);not null"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

type CreateTripInput struct {
	OwnerID     uint
	Name        string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
}

// UpdateTripInput applies only the fields that are set.
type UpdateTripInput struct {
	Name        *string
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
}
