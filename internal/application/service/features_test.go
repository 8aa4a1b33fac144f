package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/sangkips/investify-pos/internal/domain/entity"
	"github.com/sangkips/investify-pos/internal/domain/enum"
	"github.com/sangkips/investify-pos/pkg/money"
	"github.com/shopspring/decimal"
)

type featureContext struct {
	calculator *CalculatorService
	payments   *PaymentService
	last       *entity.Payment
	err        error
}

func (f *featureContext) reset() {
	f.calculator = NewCalculatorService()
	f.payments = nil
	f.last = nil
	f.err = nil
}

func (f *featureContext) aClearedCalculator() error {
	f.calculator.Clear()
	return nil
}

func (f *featureContext) iPress(keys string) error {
	for _, k := range strings.Fields(keys) {
		switch {
		case len(k) == 1 && k[0] >= '0' && k[0] <= '9':
			f.calculator.InputDigit(int(k[0] - '0'))
		case k == ".":
			f.calculator.InputDecimal()
		default:
			op, err := enum.ParseOperator(k)
			if err != nil {
				return err
			}
			f.calculator.PerformOperation(op)
		}
	}
	return nil
}

func (f *featureContext) theDisplayShows(want string) error {
	if got := f.calculator.Display(); got != want {
		return fmt.Errorf("expected display %q, got %q", want, got)
	}
	return nil
}

func (f *featureContext) theExpressionReads(want string) error {
	if got := f.calculator.CurrentExpression(); got != want {
		return fmt.Errorf("expected expression %q, got %q", want, got)
	}
	return nil
}

func (f *featureContext) anOrderTotalling(amount string) error {
	cents, err := money.Parse(amount)
	if err != nil {
		return err
	}
	f.payments = NewPaymentService(fixedTotal(cents))
	return nil
}

func (f *featureContext) theActiveMethodIs(name string) error {
	m, err := enum.ParsePaymentMethod(name)
	if err != nil {
		return err
	}
	f.payments.SetActiveMethod(m)
	return nil
}

func (f *featureContext) theReference(ref string) error {
	f.payments.SetReference(ref)
	return nil
}

func (f *featureContext) iAssign(amount string) error {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	p, err := f.payments.AssignPayment(d, "")
	f.record(&p, err)
	return nil
}

func (f *featureContext) iAssignHalfOfTheTotal() error {
	f.record(f.payments.AssignHalfAmount())
	return nil
}

func (f *featureContext) iAssignTheRemainingAmount() error {
	f.record(f.payments.AssignRemainingAmount())
	return nil
}

func (f *featureContext) record(p *entity.Payment, err error) {
	f.err = err
	if err == nil {
		f.last = p
	}
}

func (f *featureContext) theAssignmentSucceeds() error {
	return f.err
}

func (f *featureContext) theAssignmentFailsWith(msg string) error {
	if f.err == nil {
		return fmt.Errorf("expected an error containing %q", msg)
	}
	if !strings.Contains(f.err.Error(), msg) {
		return fmt.Errorf("expected error containing %q, got %q", msg, f.err.Error())
	}
	return nil
}

func (f *featureContext) theRemainingAmountIs(amount string) error {
	if got := money.Format(f.payments.RemainingAmount()); got != amount {
		return fmt.Errorf("expected remaining %s, got %s", amount, got)
	}
	return nil
}

func (f *featureContext) noMethodIsSelected() error {
	if m := f.payments.ActiveMethod(); m != enum.PaymentMethodNone {
		return fmt.Errorf("expected no method, got %s", m)
	}
	return nil
}

func (f *featureContext) theActiveMethodIsStill(name string) error {
	if got := f.payments.ActiveMethod().String(); got != name {
		return fmt.Errorf("expected method %s, got %s", name, got)
	}
	return nil
}

func (f *featureContext) theLastPaymentHasReference(ref string) error {
	if f.last == nil {
		return fmt.Errorf("no payment recorded")
	}
	if f.last.Reference != ref {
		return fmt.Errorf("expected reference %q, got %q", ref, f.last.Reference)
	}
	return nil
}

func (f *featureContext) theStagedReferenceIsEmpty() error {
	if ref := f.payments.Reference(); ref != "" {
		return fmt.Errorf("expected empty reference, got %q", ref)
	}
	return nil
}

func (f *featureContext) iRemoveThePayments(name string) error {
	m, err := enum.ParsePaymentMethod(name)
	if err != nil {
		return err
	}
	f.payments.RemovePaymentsByMethod(m)
	return nil
}

func (f *featureContext) thePaymentsAre(want string) error {
	var parts []string
	for _, p := range f.payments.Payments() {
		parts = append(parts, p.Method.String()+" "+money.Format(p.Amount))
	}
	if got := strings.Join(parts, ", "); got != want {
		return fmt.Errorf("expected payments %q, got %q", want, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	fc := &featureContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a cleared calculator$`, fc.aClearedCalculator)
	ctx.Step(`^an order totalling (\d+\.\d{2})$`, fc.anOrderTotalling)
	ctx.Step(`^the active method is "([^"]*)"$`, fc.theActiveMethodIs)
	ctx.Step(`^the reference "([^"]*)"$`, fc.theReference)

	// When steps
	ctx.Step(`^I press "([^"]*)"$`, fc.iPress)
	ctx.Step(`^I assign (\d+\.\d{2})$`, fc.iAssign)
	ctx.Step(`^I assign half of the total$`, fc.iAssignHalfOfTheTotal)
	ctx.Step(`^I assign the remaining amount$`, fc.iAssignTheRemainingAmount)
	ctx.Step(`^I remove the "([^"]*)" payments$`, fc.iRemoveThePayments)

	// Then steps
	ctx.Step(`^the display shows "([^"]*)"$`, fc.theDisplayShows)
	ctx.Step(`^the expression reads "([^"]*)"$`, fc.theExpressionReads)
	ctx.Step(`^the assignment succeeds$`, fc.theAssignmentSucceeds)
	ctx.Step(`^the assignment fails with "([^"]*)"$`, fc.theAssignmentFailsWith)
	ctx.Step(`^the remaining amount is (\d+\.\d{2})$`, fc.theRemainingAmountIs)
	ctx.Step(`^no method is selected$`, fc.noMethodIsSelected)
	ctx.Step(`^the active method is still "([^"]*)"$`, fc.theActiveMethodIsStill)
	ctx.Step(`^the last payment has reference "([^"]*)"$`, fc.theLastPaymentHasReference)
	ctx.Step(`^the staged reference is empty$`, fc.theStagedReferenceIsEmpty)
	ctx.Step(`^the payments are "([^"]*)"$`, fc.thePaymentsAre)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
