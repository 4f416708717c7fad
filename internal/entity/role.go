package entity

type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
)

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleStaff
}

// Capability именует операцию, доступ к которой разграничивается по ролям
type Capability string

const (
	CapabilityManageHotels     Capability = "manage_hotels"
	CapabilityDeleteHotel      Capability = "delete_hotel"
	CapabilityManageRooms      Capability = "manage_rooms"
	CapabilityManageGuests     Capability = "manage_guests"
	CapabilityManageBookings   Capability = "manage_bookings"
	CapabilityManagePayments   Capability = "manage_payments"
	CapabilityManageAgreements Capability = "manage_agreements"
	CapabilityBlockInventory   Capability = "block_inventory"
	CapabilityViewReports      Capability = "view_reports"
)
