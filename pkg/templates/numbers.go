package templates

import (
	"strconv"

	"github.com/aretw0/devconsole/pkg/command"
)

// NumberMessage is the autocomplete message of the numeric templates.
const NumberMessage = "number"

// SmallNumbers returns "1" to "9".
func SmallNumbers() []string {
	out := make([]string, 0, 9)
	for i := 1; i <= 9; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}

// MediumNumbers returns 10, 100, 20, 200 ... 90, 900.
func MediumNumbers() []string {
	return scaled(10, 100)
}

// BigNumbers returns 100, 1000, 200, 2000 ... 900, 9000.
func BigNumbers() []string {
	return scaled(100, 1000)
}

func scaled(low, high int) []string {
	out := make([]string, 0, 18)
	for i := 1; i <= 9; i++ {
		out = append(out, strconv.Itoa(i*low), strconv.Itoa(i*high))
	}
	return out
}

// NewSmallNumberTemplate returns an intermediate suggesting SmallNumbers.
func NewSmallNumberTemplate() *command.Intermediate {
	return newNumberTemplate(SmallNumbers)
}

// NewMediumNumberTemplate returns an intermediate suggesting MediumNumbers.
func NewMediumNumberTemplate() *command.Intermediate {
	return newNumberTemplate(MediumNumbers)
}

// NewBigNumberTemplate returns an intermediate suggesting BigNumbers.
func NewBigNumberTemplate() *command.Intermediate {
	return newNumberTemplate(BigNumbers)
}

func newNumberTemplate(numbers command.CandidatesFunc) *command.Intermediate {
	return command.NewIntermediate(command.IntermediateConfig{
		Possible:            numbers,
		AutocompleteMessage: NumberMessage,
	})
}
