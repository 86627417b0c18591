package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"car-lease-service/internal/service"
	"car-lease-service/internal/transport/http/dto"
	"car-lease-service/internal/transport/http/ez"
	"car-lease-service/internal/transport/http/middleware"
)

// CustomerHandler 客户端：浏览可租车辆、开租/退租、查看自己的租约历史。
type CustomerHandler struct {
	cars   *service.CarService
	leases *service.LeaseService
}

func NewCustomerHandler(cars *service.CarService, leases *service.LeaseService) *CustomerHandler {
	return &CustomerHandler{cars: cars, leases: leases}
}

func (h *CustomerHandler) Mount(g *gin.RouterGroup) {
	e := ez.New(g)

	// --- GET /cars 可租列表（仅 IDLE，走缓存） ---
	ez.RegisterAction(e, ez.Action[struct{}, []dto.CarResponse]{
		Method: http.MethodGet,
		Path:   "/cars",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]dto.CarResponse, string, error) {
			cars, err := h.cars.ListAvailable(c.Request.Context())
			if err != nil {
				return nil, "", err
			}
			return dto.FromCars(cars), listMsg(len(cars),
				"No cars available for lease.", "Available cars fetched successfully."), nil
		},
	})

	// --- POST /:customerId/lease 开租 ---
	ez.RegisterAction(e, ez.Action[leaseIn, dto.LeaseResponse]{
		Method: http.MethodPost,
		Path:   "/:customerId/lease",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *leaseIn) (dto.LeaseResponse, string, error) {
			l, err := h.leases.StartLease(c.Request.Context(), c.Param("customerId"), in.CarID)
			middleware.CountLeaseOp("start", outcomeOf(err))
			if err != nil {
				return dto.LeaseResponse{}, "", err
			}
			return dto.FromLease(l), "Lease started successfully.", nil
		},
	})

	// --- POST /:customerId/lease/:leaseId/end 退租（只能退自己的） ---
	ez.RegisterAction(e, ez.Action[struct{}, dto.LeaseResponse]{
		Method: http.MethodPost,
		Path:   "/:customerId/lease/:leaseId/end",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (dto.LeaseResponse, string, error) {
			l, err := h.leases.EndLeaseForCustomer(c.Request.Context(), c.Param("customerId"), c.Param("leaseId"))
			middleware.CountLeaseOp("end", outcomeOf(err))
			if err != nil {
				return dto.LeaseResponse{}, "", err
			}
			return dto.FromLease(l), "Lease ended successfully.", nil
		},
	})

	// --- GET /:customerId/leases 租约历史 ---
	ez.RegisterAction(e, ez.Action[struct{}, []dto.LeaseResponse]{
		Method: http.MethodGet,
		Path:   "/:customerId/leases",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]dto.LeaseResponse, string, error) {
			leases, err := h.leases.GetLeasesByCustomer(c.Request.Context(), c.Param("customerId"))
			if err != nil {
				return nil, "", err
			}
			return dto.FromLeases(leases), listMsg(len(leases),
				"No lease history found for the customer.", "Lease history fetched successfully."), nil
		},
	})
}
