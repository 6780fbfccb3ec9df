package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/junaidamjadofficial/newsite-accounting/internal/utils/accounting"
)

// accountCodeValidator accepts numeric codes that classify into one of the
// chart-of-accounts ranges.
func accountCodeValidator(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	return accounting.IsBalanceSheetCode(code) || accounting.IsRevenueCode(code) || accounting.IsExpenseCode(code)
}

// RegisterCustomValidators installs the binding validators used by the DTOs.
// Call once at startup before serving requests.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("accountcode", accountCodeValidator)
}
