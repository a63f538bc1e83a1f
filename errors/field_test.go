package errors

import (
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	// Declared upfront so that DeepEqual can compare the instances.
	var (
		emptyToErr       = Field("To", ErrEmpty, "recipient is required")
		negativeAmtErr   = Field("Amount", ErrAmount, "got %d", -5)
		overflowAmtErr   = Field("Amount", ErrOverflow, "above supply cap")
		transferErr      = Field("Transfer", Append(emptyToErr, Append(negativeAmtErr, ErrState)), "invalid transfer")
		amountWrappedErr = Field("Amount", negativeAmtErr, "outer")
	)

	cases := map[string]struct {
		err   error
		field string
		want  []error
	}{
		"single field error": {
			err:   emptyToErr,
			field: "To",
			want:  []error{emptyToErr},
		},
		"two errors for the same field": {
			err:   Append(negativeAmtErr, overflowAmtErr),
			field: "Amount",
			want:  []error{negativeAmtErr, overflowAmtErr},
		},
		"field holding a multi error is returned whole": {
			err:   transferErr,
			field: "Transfer",
			want:  []error{transferErr},
		},
		"nested field found inside a multi error": {
			err:   transferErr,
			field: "Amount",
			want:  []error{negativeAmtErr},
		},
		"wrapped multi error is inspected": {
			err:   Wrap(Wrap(transferErr, "mint"), "deliver"),
			field: "To",
			want:  []error{emptyToErr},
		},
		"outermost field wins when names repeat": {
			err:   amountWrappedErr,
			field: "Amount",
			want:  []error{amountWrappedErr},
		},
		"nested fields with different names": {
			err:   Field("Proposal", Field("Target", emptyToErr, "target"), "proposal"),
			field: "To",
			want:  []error{emptyToErr},
		},
		"unknown field": {
			err:   transferErr,
			field: "Owners",
			want:  nil,
		},
		"plain error has no fields": {
			err:   ErrUnauthorized,
			field: "Amount",
			want:  nil,
		},
		"nil error": {
			err:   nil,
			field: "Amount",
			want:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got := FieldErrors(tc.err, tc.field)
			if !reflect.DeepEqual(tc.want, got) {
				t.Logf("want: %#v", tc.want)
				t.Logf(" got: %#v", got)
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestAppendFieldSkipsNil(t *testing.T) {
	var errs error
	errs = AppendField(errs, "To", nil)
	errs = AppendField(errs, "Amount", nil)
	if errs != nil {
		t.Fatalf("want nil, got %+v", errs)
	}

	errs = AppendField(errs, "Amount", ErrAmount)
	if !ErrAmount.Is(errs) {
		t.Fatalf("want ErrAmount, got %+v", errs)
	}
	if got := FieldErrors(errs, "Amount"); len(got) != 1 {
		t.Fatalf("want one Amount error, got %d", len(got))
	}
}
