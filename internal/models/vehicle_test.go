package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validVehicle() Vehicle {
	year := time.Now().Year()
	return Vehicle{
		ModelID:      1,
		ColorID:      1,
		YearBuilt:    year - 1,
		YearModel:    year,
		Condition:    ConditionUsed,
		Fuel:         FuelGasoline,
		Transmission: TransmissionManual,
	}
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	fieldErr, ok := err.(*FieldError)
	if !ok {
		t.Fatalf("esperava *FieldError, veio %T (%v)", err, err)
	}
	return fieldErr.Field
}

func TestVehicleValidateOK(t *testing.T) {
	v := validVehicle()
	if err := v.Validate(); err != nil {
		t.Fatalf("veículo válido rejeitado: %v", err)
	}
}

func TestVehicleValidateYears(t *testing.T) {
	v := validVehicle()
	v.YearBuilt = 1899
	if got := fieldOf(t, v.Validate()); got != "ano_fabricacao" {
		t.Fatalf("campo: %s", got)
	}

	v = validVehicle()
	v.YearModel = time.Now().Year() + 3
	if got := fieldOf(t, v.Validate()); got != "ano_modelo" {
		t.Fatalf("campo: %s", got)
	}

	// fabricação depois do ano do modelo
	v = validVehicle()
	v.YearBuilt = v.YearModel + 1
	if got := fieldOf(t, v.Validate()); got != "ano_fabricacao" {
		t.Fatalf("campo: %s", got)
	}
}

func TestVehicleValidateChassisLength(t *testing.T) {
	v := validVehicle()
	short := "9BWZZZ377VT0042"
	v.Chassis = &short
	if got := fieldOf(t, v.Validate()); got != "chassi" {
		t.Fatalf("campo: %s", got)
	}

	exact := "9BWZZZ377VT004251"
	v.Chassis = &exact
	if err := v.Validate(); err != nil {
		t.Fatalf("chassi de 17 caracteres rejeitado: %v", err)
	}
}

func TestVehicleValidateDoors(t *testing.T) {
	v := validVehicle()
	doors := 6
	v.Doors = &doors
	if got := fieldOf(t, v.Validate()); got != "numero_portas" {
		t.Fatalf("campo: %s", got)
	}

	doors = 4
	if err := v.Validate(); err != nil {
		t.Fatalf("4 portas rejeitado: %v", err)
	}
}

func TestVehicleValidatePrices(t *testing.T) {
	v := validVehicle()
	negative := decimal.NewFromInt(-1)
	v.SalePrice = &negative
	if got := fieldOf(t, v.Validate()); got != "preco_venda" {
		t.Fatalf("campo: %s", got)
	}

	v = validVehicle()
	v.DailyRentalRate = &negative
	if got := fieldOf(t, v.Validate()); got != "preco_aluguel_diario" {
		t.Fatalf("campo: %s", got)
	}
}

func TestVehicleValidateEnums(t *testing.T) {
	v := validVehicle()
	v.Condition = "seminovo"
	if got := fieldOf(t, v.Validate()); got != "condicao" {
		t.Fatalf("campo: %s", got)
	}

	v = validVehicle()
	v.Fuel = "carvao"
	if got := fieldOf(t, v.Validate()); got != "combustivel" {
		t.Fatalf("campo: %s", got)
	}

	v = validVehicle()
	v.Transmission = "tiptronic"
	if got := fieldOf(t, v.Validate()); got != "transmissao" {
		t.Fatalf("campo: %s", got)
	}
}

func TestVehicleFullName(t *testing.T) {
	v := Vehicle{
		Model:     VehicleModel{Name: "Corolla", Brand: Brand{Name: "Toyota"}},
		YearModel: 2023,
	}
	if got := v.FullName(); got != "Toyota Corolla 2023" {
		t.Fatalf("FullName: %q", got)
	}

	v.YearModel = 0
	if got := v.FullName(); got != "Toyota Corolla" {
		t.Fatalf("FullName sem ano: %q", got)
	}
}

func TestRentalExpectedDays(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	r := Rental{StartDate: start, ExpectedEndDate: start.AddDate(0, 0, 7)}
	if got := r.ExpectedDays(); got != 7 {
		t.Fatalf("7 dias: veio %d", got)
	}

	// mesmo dia conta como uma diária
	r = Rental{StartDate: start, ExpectedEndDate: start}
	if got := r.ExpectedDays(); got != 1 {
		t.Fatalf("mesmo dia: veio %d", got)
	}
}

func TestSaleStatusTerminal(t *testing.T) {
	if SalePending.Terminal() {
		t.Fatal("pendente não é terminal")
	}
	if !SaleFinalized.Terminal() || !SaleCancelled.Terminal() {
		t.Fatal("finalizada e cancelada são terminais")
	}
}
