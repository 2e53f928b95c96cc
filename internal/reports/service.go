package reports

import (
	"sort"
	"time"

	"concessionaria-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Report: consolidado de vendas, aluguéis e pagamentos num período
// [inicio, fim). Valores em Kwanza.
type Report struct {
	Start time.Time `json:"inicio"`
	End   time.Time `json:"fim"`

	SalesCount      int             `json:"total_vendas"`
	SalesTotal      decimal.Decimal `json:"valor_vendas"`
	CommissionTotal decimal.Decimal `json:"valor_comissoes"`

	RentalsCount int             `json:"total_alugueis"`
	RentalsTotal decimal.Decimal `json:"valor_alugueis"`

	PaymentsTotal decimal.Decimal `json:"valor_pagamentos_aluguel"`

	ByEmployee []EmployeeSummary `json:"por_funcionario"`
}

type EmployeeSummary struct {
	EmployeeID   uint            `json:"funcionario_id"`
	Name         string          `json:"nome"`
	SalesCount   int             `json:"total_vendas"`
	SalesTotal   decimal.Decimal `json:"valor_vendas"`
	Commission   decimal.Decimal `json:"valor_comissao"`
	RentalsCount int             `json:"total_alugueis"`
	RentalsTotal decimal.Decimal `json:"valor_alugueis"`
}

var oneHundred = decimal.NewFromInt(100)

// rentalValue: valor final quando fechado, senão o previsto
func rentalValue(r *models.Rental) decimal.Decimal {
	if r.FinalTotal != nil {
		return *r.FinalTotal
	}
	return r.ExpectedTotal
}

// Build monta o relatório do período. Só vendas finalizadas contam;
// a comissão incide sobre o valor da venda com o percentual vigente
// do funcionário. employeeID restringe o relatório a um vendedor.
func Build(db *gorm.DB, start, end time.Time, employeeID *uint) (*Report, error) {
	report := &Report{
		Start:           start,
		End:             end,
		SalesTotal:      decimal.Zero,
		CommissionTotal: decimal.Zero,
		RentalsTotal:    decimal.Zero,
		PaymentsTotal:   decimal.Zero,
		ByEmployee:      []EmployeeSummary{},
	}

	salesQuery := db.Preload("Employee").
		Where("status = ?", models.SaleFinalized).
		Where("data_venda >= ? AND data_venda < ?", start, end)
	if employeeID != nil {
		salesQuery = salesQuery.Where("employee_id = ?", *employeeID)
	}
	var sales []models.Sale
	if err := salesQuery.Find(&sales).Error; err != nil {
		return nil, err
	}

	rentalsQuery := db.Preload("Employee").
		Where("data_criacao >= ? AND data_criacao < ?", start, end).
		Where("status <> ?", models.RentalCancelled)
	if employeeID != nil {
		rentalsQuery = rentalsQuery.Where("employee_id = ?", *employeeID)
	}
	var rentals []models.Rental
	if err := rentalsQuery.Find(&rentals).Error; err != nil {
		return nil, err
	}

	paymentsQuery := db.Model(&models.RentalPayment{}).
		Select("pagamentos_aluguel.*").
		Joins("JOIN alugueis ON alugueis.id = pagamentos_aluguel.rental_id").
		Where("pagamentos_aluguel.data_pagamento >= ? AND pagamentos_aluguel.data_pagamento < ?", start, end)
	if employeeID != nil {
		paymentsQuery = paymentsQuery.Where("alugueis.employee_id = ?", *employeeID)
	}
	var payments []models.RentalPayment
	if err := paymentsQuery.Find(&payments).Error; err != nil {
		return nil, err
	}

	byEmployee := map[uint]*EmployeeSummary{}
	summaryFor := func(id uint, name string) *EmployeeSummary {
		if s, ok := byEmployee[id]; ok {
			return s
		}
		s := &EmployeeSummary{
			EmployeeID:   id,
			Name:         name,
			SalesTotal:   decimal.Zero,
			Commission:   decimal.Zero,
			RentalsTotal: decimal.Zero,
		}
		byEmployee[id] = s
		return s
	}

	for i := range sales {
		sale := &sales[i]
		commission := sale.SaleValue.Mul(sale.Employee.SaleCommission).Div(oneHundred)

		report.SalesCount++
		report.SalesTotal = report.SalesTotal.Add(sale.SaleValue)
		report.CommissionTotal = report.CommissionTotal.Add(commission)

		s := summaryFor(sale.EmployeeID, sale.Employee.Name)
		s.SalesCount++
		s.SalesTotal = s.SalesTotal.Add(sale.SaleValue)
		s.Commission = s.Commission.Add(commission)
	}

	for i := range rentals {
		rental := &rentals[i]
		value := rentalValue(rental)

		report.RentalsCount++
		report.RentalsTotal = report.RentalsTotal.Add(value)

		s := summaryFor(rental.EmployeeID, rental.Employee.Name)
		s.RentalsCount++
		s.RentalsTotal = s.RentalsTotal.Add(value)
	}

	for i := range payments {
		report.PaymentsTotal = report.PaymentsTotal.Add(payments[i].Amount)
	}

	for _, s := range byEmployee {
		report.ByEmployee = append(report.ByEmployee, *s)
	}
	sort.Slice(report.ByEmployee, func(i, j int) bool {
		a, b := report.ByEmployee[i], report.ByEmployee[j]
		if !a.SalesTotal.Equal(b.SalesTotal) {
			return a.SalesTotal.GreaterThan(b.SalesTotal)
		}
		return a.Name < b.Name
	})

	return report, nil
}
