package errors

import "testing"

func TestParseErrorIncludesPosition(t *testing.T) {
	err := NewParseError(Position{Line: 3, Column: 7}, "unexpected token %s", "FROM")
	want := "<query>:3:7: unexpected token FROM"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Kind() != Parse {
		t.Errorf("Kind() = %s, want parse", err.Kind())
	}
}

func TestPlanErrorHasNoPosition(t *testing.T) {
	err := NewPlanError("%s is not exist", "users")
	want := "<query>: users is not exist"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Kind() != Plan {
		t.Errorf("Kind() = %s, want plan", err.Kind())
	}
}

func TestInternalErrorKind(t *testing.T) {
	err := NewInternalError("invariant violated")
	if err.Kind() != Internal {
		t.Errorf("Kind() = %s, want internal", err.Kind())
	}
}

func TestIsKind(t *testing.T) {
	err := NewPlanError("boom")
	if !IsKind(err, Plan) {
		t.Error("expected IsKind(err, Plan) to be true")
	}
	if IsKind(err, Parse) {
		t.Error("expected IsKind(err, Parse) to be false")
	}
	if IsKind(nil, Plan) {
		t.Error("expected IsKind(nil, Plan) to be false")
	}
}

func TestPositionStringEmptyWhenZero(t *testing.T) {
	var p Position
	if p.String() != "" {
		t.Errorf("zero Position.String() = %q, want empty", p.String())
	}
}
