// Package seed contiene el dataset inicial con el que se puebla cada
// colección vacía del Entity Store en su primer acceso.
package seed

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexile/pharmacy-api/internal/domain/entity"
)

// Credenciales de demo. En producción el alta de usuarios pasa por el
// registro con hash bcrypt propio; estos valores solo arrancan el dataset.
const (
	demoPassword   = "password"
	demoAccessCode = "1234"
)

// Branches devuelve las sucursales iniciales.
func Branches() []entity.Branch {
	return []entity.Branch{
		{ID: "b1", Name: "Downtown NYC", Location: "New York"},
		{ID: "b2", Name: "Austin Hub", Location: "Austin"},
	}
}

// Users devuelve los usuarios iniciales: un dueño, un gerente con código de
// acceso y un farmacéutico de la sucursal b1.
func Users() []entity.User {
	now := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt solo falla con costos fuera de rango; DefaultCost es válido.
		panic("seed: hash de password demo: " + err.Error())
	}
	return []entity.User{
		{
			ID:                 "u1",
			Name:               "Alice Owner",
			Email:              "admin@nexile.com",
			Role:               entity.RoleOwner,
			PasswordHash:       string(hash),
			SubscriptionStatus: entity.SubscriptionActive,
			TrialEndsAt:        now.Add(30 * 24 * time.Hour),
		},
		{
			ID:                 "u2",
			Name:               "Bob Manager",
			Email:              "bob@nexile.com",
			Role:               entity.RoleManager,
			AssignedBranchIDs:  []string{"b1"},
			AccessCode:         demoAccessCode,
			SubscriptionStatus: entity.SubscriptionActive,
			TrialEndsAt:        now,
		},
		{
			ID:                 "u3",
			Name:               "Charlie Pharm",
			Email:              "charlie@nexile.com",
			Role:               entity.RolePharmacist,
			BranchID:           "b1",
			PasswordHash:       string(hash),
			SubscriptionStatus: entity.SubscriptionActive,
			TrialEndsAt:        now,
		},
	}
}

// Products devuelve el inventario inicial de ambas sucursales.
func Products() []entity.Product {
	return []entity.Product{
		{
			ID: "p1", Name: "Amoxicillin 500mg", SKU: "AMX500", Category: "Antibiotics",
			Price: decimal.NewFromFloat(12.50), Cost: decimal.NewFromFloat(5.00),
			Stock: 150, MinStockLevel: 50,
			ExpiryDate: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), BranchID: "b1",
		},
		{
			ID: "p2", Name: "Ibuprofen 200mg", SKU: "IBU200", Category: "Pain Relief",
			Price: decimal.NewFromFloat(8.00), Cost: decimal.NewFromFloat(2.50),
			Stock: 40, MinStockLevel: 100,
			ExpiryDate: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), BranchID: "b1",
		},
		{
			ID: "p3", Name: "Cetirizine 10mg", SKU: "CET010", Category: "Allergy",
			Price: decimal.NewFromFloat(15.00), Cost: decimal.NewFromFloat(6.00),
			Stock: 200, MinStockLevel: 30,
			ExpiryDate: time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), BranchID: "b1",
		},
		{
			ID: "p4", Name: "Vitamin D3", SKU: "VITD3", Category: "Supplements",
			Price: decimal.NewFromFloat(25.00), Cost: decimal.NewFromFloat(12.00),
			Stock: 80, MinStockLevel: 20,
			ExpiryDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), BranchID: "b2",
		},
	}
}

// Transactions devuelve la colección inicial de ventas: vacía.
func Transactions() []entity.Transaction {
	return []entity.Transaction{}
}
