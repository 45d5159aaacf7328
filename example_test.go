package formstate_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/Azhovan/formstate"
	"github.com/Azhovan/formstate/ruleset"
)

// Example demonstrates the focus, change, blur cycle followed by a rejected submission.
func Example() {
	values := formstate.NewMapValues(nil)
	rules, err := ruleset.New(map[string]string{
		"email":    "required,email",
		"password": "required,min=8",
	})
	if err != nil {
		log.Fatal(err)
	}

	engine, err := formstate.New([]string{"email", "password"}, values,
		formstate.WithSchema(rules),
		formstate.WithFieldValidators(rules.FieldValidators()))
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	_ = engine.OnFocus("email")
	values.Set("email", "a@b.com")
	_, _ = engine.OnChange(ctx, "email", "a@b.com")
	_, _ = engine.OnBlur(ctx, "email")
	engine.Wait()

	fmt.Println(engine.ComputeValidationDisplay("email"))
	fmt.Println(engine.LabelStyle("email"))

	engine.SetSubmitError()
	fmt.Println(engine.ComputeValidationDisplay("email"))
	fmt.Println(engine.AreAllFieldsValid())

	// Output:
	// success
	// signin-label-success
	// error
	// false
}

// ExampleWithConfirm demonstrates the confirm/reference relation of a sign-up form.
func ExampleWithConfirm() {
	values := formstate.NewMapValues(map[string]string{"password": "Abc12345"})
	engine, err := formstate.New([]string{"password", "confirmPassword"}, values,
		formstate.WithMode(formstate.ModeSignUp),
		formstate.WithConfirm(formstate.ConfirmRelation{Field: "confirmPassword", Reference: "password"}))
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	for _, typed := range []string{"Abc", "Abc12345"} {
		values.Set("confirmPassword", typed)
		p, _ := engine.OnChange(ctx, "confirmPassword", typed)
		fmt.Printf("%s -> %t\n", typed, p.Valid())
	}

	// Output:
	// Abc -> false
	// Abc12345 -> true
}

// ExampleDump demonstrates writing the current field states.
func ExampleDump() {
	values := formstate.NewMapValues(nil)
	engine, err := formstate.New([]string{"email"}, values,
		formstate.WithFieldValidators(map[string]formstate.FieldValidator{
			"email": formstate.FieldValidatorFunc(func(ctx context.Context, value string) error {
				if value == "" {
					return formstate.FieldError{Code: formstate.ErrCodeRequired, Message: "is required"}
				}
				return nil
			}),
		}))
	if err != nil {
		log.Fatal(err)
	}

	p, _ := engine.OnBlur(context.Background(), "email")
	_ = p.Wait(context.Background())

	if err := formstate.Dump(os.Stdout, engine, formstate.WithMessages()); err != nil {
		log.Fatal(err)
	}

	// Output:
	// email: display=error label=signin-label-error focused=false touched=true valid=false submitError=false
	//   error: is required
	// all valid: false
}
