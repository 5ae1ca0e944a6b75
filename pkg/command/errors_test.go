package command

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cmd := MustNew(newFakeHost(), Definition{Name: "ban"})
	cause := errors.New("gateway unavailable")

	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ""},
		{"plain error", cause, ""},
		{"invalid argument", cmd.InvalidArgument("bad id %q", "x"), KindInvalidArgument},
		{"failure", cmd.Failure(cause), KindCommandFailure},
		{"wrapped failure", fmt.Errorf("dispatch: %w", cmd.Failure(cause)), KindCommandFailure},
		{"not implemented", cmd.Run(context.Background(), nil, nil), KindNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFailureUnwraps(t *testing.T) {
	cmd := MustNew(newFakeHost(), Definition{Name: "ban"})
	cause := errors.New("gateway unavailable")

	err := cmd.Failure(cause)
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(failure, cause) = false")
	}
	if IsImplementationError(err) {
		t.Errorf("IsImplementationError(failure) = true")
	}
	if got, want := err.Error(), "ban: Command Failure: gateway unavailable"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestDefinitionErrorMessage(t *testing.T) {
	err := Validate(newFakeHost(), Definition{Name: "ping", Type: "GAMES"})
	if got, want := err.Error(), `invalid command definition "ping": type: unknown type "GAMES"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = Validate(newFakeHost(), Definition{})
	if got, want := err.Error(), "invalid command definition: name: name is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
