package forms

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Field names as submitted by the invoice form.
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// Messages rendered inline next to the offending input.
const (
	MsgCustomerRequired = "Please select a customer."
	MsgAmountTooSmall   = "Please enter an amount greater than $0."
	MsgStatusInvalid    = "Please select an invoice status."
)

var validate = validator.New()

func init() {
	// amount arrives as a raw string and must coerce to a decimal strictly
	// greater than zero whose cents fit in int64. Coercion failure is a
	// validation error, not a panic.
	validate.RegisterValidation("gtzero", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil || !d.IsPositive() {
			return false
		}
		return d.Shift(2).Round(0).BigInt().IsInt64()
	})
}

// invoiceInput mirrors the raw form fields. id and date are never
// user-suppliable, so create and update share one shape.
type invoiceInput struct {
	CustomerID string `validate:"required"`
	Amount     string `validate:"required,gtzero"`
	Status     string `validate:"required,oneof=pending paid"`
}

// InvoiceValues is the typed, validated outcome of a form submission.
// AmountCents holds round(amount x 100).
type InvoiceValues struct {
	CustomerID  string
	AmountCents int64
	Status      string
}

// ParseInvoice validates and coerces raw form fields. It returns either the
// typed values or a field-to-messages map, never both.
func ParseInvoice(form url.Values) (*InvoiceValues, map[string][]string) {
	in := invoiceInput{
		CustomerID: form.Get(FieldCustomerID),
		Amount:     form.Get(FieldAmount),
		Status:     form.Get(FieldStatus),
	}

	if err := validate.Struct(in); err != nil {
		fieldErrs := make(map[string][]string)
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.StructField() {
				case "CustomerID":
					fieldErrs[FieldCustomerID] = append(fieldErrs[FieldCustomerID], MsgCustomerRequired)
				case "Amount":
					fieldErrs[FieldAmount] = append(fieldErrs[FieldAmount], MsgAmountTooSmall)
				case "Status":
					fieldErrs[FieldStatus] = append(fieldErrs[FieldStatus], MsgStatusInvalid)
				}
			}
		}
		return nil, fieldErrs
	}

	amount, _ := decimal.NewFromString(in.Amount) // coercion validated above
	return &InvoiceValues{
		CustomerID:  in.CustomerID,
		AmountCents: amount.Shift(2).Round(0).IntPart(),
		Status:      in.Status,
	}, nil
}
