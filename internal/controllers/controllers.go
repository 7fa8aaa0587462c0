package controllers

import (
	"renthub/internal/events"
	"renthub/internal/repositories"
	"renthub/internal/services"

	authController "renthub/internal/controllers/auth"
	buildingController "renthub/internal/controllers/buildings"
	changeRequestController "renthub/internal/controllers/changerequests"
	contractController "renthub/internal/controllers/contracts"
	laundryController "renthub/internal/controllers/laundry"
	paymentController "renthub/internal/controllers/payments"
	roomController "renthub/internal/controllers/rooms"
	userController "renthub/internal/controllers/users"
)

type Controllers struct {
	Auth          authController.AuthControllerInterface
	User          userController.UserControllerInterface
	Building      buildingController.BuildingControllerInterface
	Room          roomController.RoomControllerInterface
	Contract      contractController.ContractControllerInterface
	Payment       paymentController.PaymentControllerInterface
	Laundry       laundryController.LaundryControllerInterface
	ChangeRequest changeRequestController.ChangeRequestControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	eventBus *events.EventBus,
) Controllers {
	return Controllers{
		Auth:          authController.New(repos, services),
		User:          userController.New(repos, services),
		Building:      buildingController.New(repos),
		Room:          roomController.New(repos),
		Contract:      contractController.New(repos, services),
		Payment:       paymentController.New(repos, services, eventBus),
		Laundry:       laundryController.New(repos, services, eventBus),
		ChangeRequest: changeRequestController.New(repos, services, eventBus),
	}
}
