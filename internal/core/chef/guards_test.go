package chef

import "testing"

func ptr[T any](v T) *T { return &v }

func TestCanCreate(t *testing.T) {
	tests := []struct {
		name        string
		ctx         CreateContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "valid chef",
			ctx:         CreateContext{Name: "John", BakeryID: 1},
			wantAllowed: true,
		},
		{
			name:        "blank name",
			ctx:         CreateContext{Name: "", BakeryID: 1},
			wantAllowed: false,
			wantReason:  "Chef name cannot be empty",
		},
		{
			name:        "no bakery",
			ctx:         CreateContext{Name: "John"},
			wantAllowed: false,
			wantReason:  "Chef must belong to a bakery, got bakery ID 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreate(tt.ctx)

			if result.Allowed != tt.wantAllowed {
				t.Errorf("CanCreate() Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("CanCreate() Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanUpdate(t *testing.T) {
	tests := []struct {
		name        string
		ctx         UpdateContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "move to another bakery",
			ctx:         UpdateContext{ChefID: 2, BakeryID: ptr[int64](5)},
			wantAllowed: true,
		},
		{
			name:        "missing id",
			ctx:         UpdateContext{Name: ptr("Kate")},
			wantAllowed: false,
			wantReason:  "Invalid chef ID 0",
		},
		{
			name:        "blank rename",
			ctx:         UpdateContext{ChefID: 2, Name: ptr(" ")},
			wantAllowed: false,
			wantReason:  "Chef name cannot be empty",
		},
		{
			name:        "negative bakery",
			ctx:         UpdateContext{ChefID: 2, BakeryID: ptr[int64](-1)},
			wantAllowed: false,
			wantReason:  "Chef must belong to a bakery, got bakery ID -1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanUpdate(tt.ctx)

			if result.Allowed != tt.wantAllowed {
				t.Errorf("CanUpdate() Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("CanUpdate() Reason = %q, want %q", result.Reason, tt.wantReason)
			}

			err := result.Error()
			if !tt.wantAllowed && err == nil {
				t.Error("Error() should return error when not allowed")
			}
		})
	}
}
