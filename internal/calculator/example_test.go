package calculator_test

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/equalsplit/internal/calculator"
	"github.com/mmynk/equalsplit/internal/models"
)

func ExampleSettle() {
	transfers, err := calculator.Settle([]models.Participant{
		{Name: "Alice", Paid: decimal.NewFromInt(90)},
		{Name: "Bob", Paid: decimal.Zero},
		{Name: "Carol", Paid: decimal.NewFromInt(30)},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, t := range transfers {
		fmt.Println(t.Describe("AED"))
	}
	// Output:
	// Bob pays Alice AED 40.00
	// Carol pays Alice AED 10.00
}
