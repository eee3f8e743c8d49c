package devconsole_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/devconsole"
	"github.com/aretw0/devconsole/pkg/domain"
	"github.com/aretw0/devconsole/pkg/dsl"
	"github.com/aretw0/devconsole/pkg/templates"
)

// ExampleConsole_Execute builds a small command tree with the dsl package
// and runs a few lines against it.
func ExampleConsole_Execute() {
	console := devconsole.New(devconsole.WithOutput(os.Stdout), devconsole.WithoutHelp())

	b := dsl.New()
	b.Add("gold").
		Error("could not parse previous command", "options are:", "* gold add [amount]").
		OnNode("add", templates.NewMediumNumberTemplate()).
		DefaultDo(func(token string, _ []string) error {
			console.Logf("adding %s gold", token)
			return nil
		})

	cmds, err := b.Build()
	if err != nil {
		panic(err)
	}
	if err := console.RegisterAll(cmds); err != nil {
		panic(err)
	}

	ctx := context.Background()
	if _, err := console.Execute(ctx, "gold add 250"); err != nil {
		fmt.Println(err)
	}

	res, _ := console.Execute(ctx, "gold add")
	fmt.Println(res.Outcome, res.Suggestions.Message)

	_, err = console.Execute(ctx, "gold remove 10")
	var unresolved *domain.UnresolvedTokenError
	if errors.As(err, &unresolved) {
		fmt.Println(strings.ReplaceAll(err.Error(), "\n", " | "))
	}

	// Output:
	// adding 250 gold
	// incomplete number
	// could not parse previous command | options are: | * gold add [amount]
}

// ExampleConsole_Complete shows suggestions for a line being typed.
func ExampleConsole_Complete() {
	console := devconsole.New(devconsole.WithoutHelp())
	_ = console.Register("count", templates.NewSmallNumberTemplate())

	s := console.Complete(context.Background(), "count ")
	fmt.Println(s.Message, s.Candidates)

	// Output:
	// number [1 2 3 4 5 6 7 8 9]
}
