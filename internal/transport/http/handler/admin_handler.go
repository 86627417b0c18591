package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"car-lease-service/internal/domain"
	"car-lease-service/internal/service"
	"car-lease-service/internal/transport/http/dto"
	"car-lease-service/internal/transport/http/ez"
	"car-lease-service/internal/transport/http/middleware"
)

// AdminHandler 管理端：用户登记、车辆登记/查询、租约操作与历史、导出、种子数据。
type AdminHandler struct {
	users  *service.UserService
	cars   *service.CarService
	leases *service.LeaseService
	export *service.ExportService
	seed   *service.SeedService
}

func NewAdminHandler(users *service.UserService, cars *service.CarService, leases *service.LeaseService, export *service.ExportService, seed *service.SeedService) *AdminHandler {
	return &AdminHandler{users: users, cars: cars, leases: leases, export: export, seed: seed}
}

func (h *AdminHandler) Mount(g *gin.RouterGroup) {
	e := ez.New(g)

	// --- POST /users 用户登记 ---
	type userIn struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Role     string `json:"role"`
		Password string `json:"password"` // 可选
	}
	ez.RegisterAction(e, ez.Action[userIn, dto.UserResponse]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *userIn) (dto.UserResponse, string, error) {
			u, err := h.users.Register(c.Request.Context(), service.RegisterUserInput{
				Name: in.Name, Email: in.Email, Role: in.Role, Password: in.Password,
			})
			if errors.Is(err, domain.ErrAlreadyExists) {
				// 契约：重复邮箱返回 FAILURE 包体但携带已有记录
				return dto.UserResponse{}, "", ez.Fail(http.StatusOK, "User already exists with this email.", dto.FromUser(u))
			}
			if err != nil {
				return dto.UserResponse{}, "", err
			}
			return dto.FromUser(u), "User registered successfully.", nil
		},
	})

	// --- GET /users?page=&size= 用户分页列表 ---
	type usersQ struct {
		Page int `form:"page"`
		Size int `form:"size"`
	}
	type usersPage struct {
		Items []dto.UserResponse `json:"items"`
		Total int64              `json:"total"`
	}
	ez.RegisterAction(e, ez.Action[usersQ, usersPage]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *usersQ) (usersPage, string, error) {
			users, total, err := h.users.List(c.Request.Context(), in.Page, in.Size)
			if err != nil {
				return usersPage{}, "", err
			}
			items := make([]dto.UserResponse, 0, len(users))
			for i := range users {
				items = append(items, dto.FromUser(&users[i]))
			}
			return usersPage{Items: items, Total: total}, "User list fetched successfully.", nil
		},
	})

	// --- POST /owners/:ownerId/cars 车辆登记 ---
	type carIn struct {
		Model string `json:"model"`
	}
	ez.RegisterAction(e, ez.Action[carIn, dto.CarResponse]{
		Method: http.MethodPost,
		Path:   "/owners/:ownerId/cars",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *carIn) (dto.CarResponse, string, error) {
			car, err := h.cars.Register(c.Request.Context(), c.Param("ownerId"), in.Model)
			if err != nil {
				return dto.CarResponse{}, "", err
			}
			return dto.FromCar(car), "Car registered successfully.", nil
		},
	})

	// --- GET /cars?status=IDLE|ON_LEASE 车辆列表 ---
	type carsQ struct {
		Status string `form:"status"`
	}
	ez.RegisterAction(e, ez.Action[carsQ, []dto.CarResponse]{
		Method: http.MethodGet,
		Path:   "/cars",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *carsQ) ([]dto.CarResponse, string, error) {
			var (
				cars []domain.Car
				err  error
			)
			if in.Status != "" {
				status, ok := domain.ParseCarStatus(in.Status)
				if !ok {
					return nil, "", domain.Validationf("invalid car status: %s", in.Status)
				}
				cars, err = h.cars.ListByStatus(c.Request.Context(), status)
			} else {
				cars, err = h.cars.ListAll(c.Request.Context())
			}
			if err != nil {
				return nil, "", err
			}
			return dto.FromCars(cars), listMsg(len(cars), "No cars found.", "Car list fetched successfully."), nil
		},
	})

	// --- POST /customers/:customerId/lease 代客户开租 ---
	ez.RegisterAction(e, ez.Action[leaseIn, dto.LeaseResponse]{
		Method: http.MethodPost,
		Path:   "/customers/:customerId/lease",
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

	// --- POST /leases/:leaseId/end 管理侧结束租约（重复结束 → 业务违规） ---
	ez.RegisterAction(e, ez.Action[struct{}, dto.LeaseResponse]{
		Method: http.MethodPost,
		Path:   "/leases/:leaseId/end",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (dto.LeaseResponse, string, error) {
			l, err := h.leases.EndLease(c.Request.Context(), c.Param("leaseId"))
			middleware.CountLeaseOp("end", outcomeOf(err))
			if err != nil {
				return dto.LeaseResponse{}, "", err
			}
			return dto.FromLease(l), "Lease ended successfully.", nil
		},
	})

	// --- GET /leases/by-customer/:id / by-car/:id 租约历史 ---
	ez.RegisterAction(e, ez.Action[struct{}, []dto.LeaseResponse]{
		Method: http.MethodGet,
		Path:   "/leases/by-customer/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]dto.LeaseResponse, string, error) {
			leases, err := h.leases.GetLeasesByCustomer(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, "", err
			}
			return dto.FromLeases(leases), listMsg(len(leases),
				"No lease history found for this customer.", "Lease history fetched successfully."), nil
		},
	})
	ez.RegisterAction(e, ez.Action[struct{}, []dto.LeaseResponse]{
		Method: http.MethodGet,
		Path:   "/leases/by-car/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]dto.LeaseResponse, string, error) {
			leases, err := h.leases.GetLeasesByCar(c.Request.Context(), c.Param("id"))
			if err != nil {
				return nil, "", err
			}
			return dto.FromLeases(leases), listMsg(len(leases),
				"No lease history found for this car.", "Lease history fetched successfully."), nil
		},
	})

	// --- GET /leases/export?format=csv|pdf 文件下载，不走包体 ---
	g.GET("/leases/export", h.exportLeases)

	// --- POST /bootstrap-users 种子数据（幂等） ---
	ez.RegisterAction(e, ez.Action[struct{}, *service.SeedResult]{
		Method: http.MethodPost,
		Path:   "/bootstrap-users",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*service.SeedResult, string, error) {
			res, err := h.seed.Bootstrap(c.Request.Context())
			if err != nil {
				// 种子失败不外泄细节
				return nil, "", ez.Fail(http.StatusInternalServerError, "Failed to insert seed data.", nil)
			}
			return res, "Seed data inserted.", nil
		},
	})
}

func (h *AdminHandler) exportLeases(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	switch format {
	case "pdf":
		c.Header("Content-Disposition", `attachment; filename=lease-history.pdf`)
		c.Header("Content-Type", "application/pdf")
		if err := h.export.WritePDF(c.Request.Context(), c.Writer); err != nil && !c.Writer.Written() {
			ez.WriteErr(c, err)
		}
	case "csv":
		c.Header("Content-Disposition", `attachment; filename=lease-history.csv`)
		c.Header("Content-Type", "text/csv")
		if err := h.export.WriteCSV(c.Request.Context(), c.Writer); err != nil && !c.Writer.Written() {
			ez.WriteErr(c, err)
		}
	default:
		ez.WriteErr(c, domain.Validationf("unsupported export format: %s", format))
	}
}

// leaseIn 开租请求体，管理端与客户端共用。
type leaseIn struct {
	CarID string `json:"carId"`
}

func listMsg(n int, empty, ok string) string {
	if n == 0 {
		return empty
	}
	return ok
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrBusinessRule),
		errors.Is(err, domain.ErrRoleViolation),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrValidation):
		return "rejected"
	}
	return "error"
}
