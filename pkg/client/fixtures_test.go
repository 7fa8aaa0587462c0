package client

import "renthub/internal/models"

func createBuildingFixture() models.CreateBuildingRequest {
	return models.CreateBuildingRequest{
		Name:    "Ed",
		Address: "Calle Mayor 12",
	}
}

func createUserFixture() models.CreateUserRequest {
	return models.CreateUserRequest{
		FirstName:      "Ana",
		LastName:       "García",
		Email:          "ana@example.com",
		Password:       "segura123",
		DocumentType:   "DNI",
		DocumentNumber: "12345678X",
	}
}
