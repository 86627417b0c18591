package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"car-lease-service/internal/service"
	"car-lease-service/internal/transport/http/dto"
	"car-lease-service/internal/transport/http/ez"
)

// OwnerHandler 车主端：登记自己的车、查看自己的车。
type OwnerHandler struct {
	cars *service.CarService
}

func NewOwnerHandler(cars *service.CarService) *OwnerHandler {
	return &OwnerHandler{cars: cars}
}

func (h *OwnerHandler) Mount(g *gin.RouterGroup) {
	e := ez.New(g)

	type carIn struct {
		Model string `json:"model"`
	}
	ez.RegisterAction(e, ez.Action[carIn, dto.CarResponse]{
		Method: http.MethodPost,
		Path:   "/:ownerId/cars",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *carIn) (dto.CarResponse, string, error) {
			car, err := h.cars.Register(c.Request.Context(), c.Param("ownerId"), in.Model)
			if err != nil {
				return dto.CarResponse{}, "", err
			}
			return dto.FromCar(car), "Car registered successfully.", nil
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, []dto.CarResponse]{
		Method: http.MethodGet,
		Path:   "/:ownerId/cars",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]dto.CarResponse, string, error) {
			cars, err := h.cars.ListByOwner(c.Request.Context(), c.Param("ownerId"))
			if err != nil {
				return nil, "", err
			}
			return dto.FromCars(cars), listMsg(len(cars),
				"No cars found for the given owner.", "Owner cars fetched successfully."), nil
		},
	})
}
