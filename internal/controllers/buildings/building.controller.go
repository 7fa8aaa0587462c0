package buildingController

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	. "renthub/internal/models"
	"renthub/internal/repositories"
	"renthub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
)

const minBuildingNameLength = 3

type BuildingController struct {
	buildingRepo repositories.BuildingRepository
	log          logger.Logger
}

type BuildingControllerInterface interface {
	List(ctx context.Context, params ListParams) (ListResult[Building], error)
	Get(ctx context.Context, id uuid.UUID) (*Building, error)
	Create(ctx context.Context, request CreateBuildingRequest) (*Building, error)
	Update(ctx context.Context, id uuid.UUID, request UpdateBuildingRequest) (*Building, error)
}

func New(repos repositories.Repository) BuildingControllerInterface {
	return &BuildingController{
		buildingRepo: repos.Building,
		log:          logger.New("buildingController"),
	}
}

// validateBuildingForm checks the rules tag validation cannot express.
func validateBuildingForm(name string) map[string]string {
	errs := map[string]string{}
	if utf8.RuneCountInString(strings.TrimSpace(name)) < minBuildingNameLength {
		errs["name"] = "Debe tener al menos 3 caracteres"
	}
	return errs
}

func (c *BuildingController) List(
	ctx context.Context,
	params ListParams,
) (ListResult[Building], error) {
	log := c.log.Function("List")
	params.Normalize()

	buildings, err := c.buildingRepo.List(ctx)
	if err != nil {
		return ListResult[Building]{}, log.Err("failed to list buildings", err)
	}

	filtered := utils.FilterBySearch(buildings, params.Search)
	if key := buildingSortKey(params.Sort); key != nil {
		utils.SortSlice(filtered, key, params.Order)
	}
	page, total := utils.Paginate(filtered, params.Page, params.PageSize)

	return ListResult[Building]{
		Items:    page,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

func buildingSortKey(field string) func(Building) string {
	switch field {
	case "name":
		return func(b Building) string { return strings.ToLower(b.Name) }
	case "address":
		return func(b Building) string { return strings.ToLower(b.Address) }
	case "createdAt":
		return func(b Building) string { return b.CreatedAt.Format(time.RFC3339) }
	default:
		return nil
	}
}

func (c *BuildingController) Get(ctx context.Context, id uuid.UUID) (*Building, error) {
	building, err := c.buildingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return building, nil
}

func (c *BuildingController) Create(
	ctx context.Context,
	request CreateBuildingRequest,
) (*Building, error) {
	log := c.log.Function("Create")

	errs := ValidateStruct(request)
	for field, msg := range validateBuildingForm(request.Name) {
		errs[field] = msg
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	building := &Building{
		Name:    strings.TrimSpace(request.Name),
		Address: request.Address,
	}
	if err := c.buildingRepo.Create(ctx, building); err != nil {
		return nil, log.Err("failed to create building", err, "name", building.Name)
	}

	log.Info("building created", "buildingID", building.ID, "name", building.Name)
	return building, nil
}

func (c *BuildingController) Update(
	ctx context.Context,
	id uuid.UUID,
	request UpdateBuildingRequest,
) (*Building, error) {
	log := c.log.Function("Update")

	building, err := c.buildingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if request.Name != nil {
		if errs := validateBuildingForm(*request.Name); len(errs) > 0 {
			return nil, NewValidationError(errs)
		}
	}

	request.ApplyTo(building)
	if err := c.buildingRepo.Update(ctx, building); err != nil {
		return nil, log.Err("failed to update building", err, "buildingID", building.ID)
	}

	return building, nil
}
