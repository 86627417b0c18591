// Package dto 是领域模型到对外 JSON 的序列化边界。
// 领域实体只在这里做一次映射，各角色路由共用同一组响应结构。
package dto

import (
	"car-lease-service/internal/domain"
)

const dateLayout = "2006-01-02"

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type CarResponse struct {
	ID         string `json:"id"`
	Model      string `json:"model"`
	Status     string `json:"status"`
	OwnerEmail string `json:"ownerEmail"`
}

type LeaseResponse struct {
	LeaseID       string  `json:"leaseId"`
	CarModel      string  `json:"carModel"`
	CustomerEmail string  `json:"customerEmail"`
	StartDate     string  `json:"startDate"`
	EndDate       *string `json:"endDate"` // null 表示在租
}

func FromUser(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

func FromCar(c *domain.Car) CarResponse {
	out := CarResponse{ID: c.ID, Model: c.Model, Status: string(c.Status)}
	if c.Owner != nil {
		out.OwnerEmail = c.Owner.Email
	}
	return out
}

func FromCars(cars []domain.Car) []CarResponse {
	out := make([]CarResponse, 0, len(cars))
	for i := range cars {
		out = append(out, FromCar(&cars[i]))
	}
	return out
}

func FromLease(l *domain.Lease) LeaseResponse {
	out := LeaseResponse{
		LeaseID:   l.ID,
		StartDate: l.StartDate.Format(dateLayout),
	}
	if l.Car != nil {
		out.CarModel = l.Car.Model
	}
	if l.Customer != nil {
		out.CustomerEmail = l.Customer.Email
	}
	if l.EndDate != nil {
		s := l.EndDate.Format(dateLayout)
		out.EndDate = &s
	}
	return out
}

func FromLeases(leases []domain.Lease) []LeaseResponse {
	out := make([]LeaseResponse, 0, len(leases))
	for i := range leases {
		out = append(out, FromLease(&leases[i]))
	}
	return out
}
