package repositories

import (
	"renthub/internal/database"
	"renthub/internal/events"
)

type Repository struct {
	User            UserRepository
	ReferencePerson ReferencePersonRepository
	Building        BuildingRepository
	Room            RoomRepository
	Contract        ContractRepository
	Payment         PaymentRepository
	Laundry         LaundryBookingRepository
	ChangeRequest   ChangeRequestRepository
}

func New(db database.DB, eventBus *events.EventBus) Repository {
	return Repository{
		User:            NewUserRepository(db, eventBus), // user repo caches profiles in valkey
		ReferencePerson: NewReferencePersonRepository(db),
		Building:        NewBuildingRepository(db),
		Room:            NewRoomRepository(db),
		Contract:        NewContractRepository(db),
		Payment:         NewPaymentRepository(db),
		Laundry:         NewLaundryBookingRepository(db),
		ChangeRequest:   NewChangeRequestRepository(db),
	}
}
