package cart

import "testing"

func TestCartEqual(t *testing.T) {
	base := Cart{
		SessionID: "s1",
		Lines: []Line{
			{ItemID: "widget", Quantity: 2, UnitPrice: 9.99},
			{ItemID: "gig", Quantity: 1, UnitPrice: 35},
		},
	}

	tests := map[string]struct {
		other Cart
		want  bool
	}{
		"identical snapshot": {
			other: base.clone(),
			want:  true,
		},
		"different session": {
			other: Cart{SessionID: "s2", Lines: base.Lines},
			want:  false,
		},
		"different quantity": {
			other: Cart{SessionID: "s1", Lines: []Line{
				{ItemID: "widget", Quantity: 3, UnitPrice: 9.99},
				{ItemID: "gig", Quantity: 1, UnitPrice: 35},
			}},
			want: false,
		},
		"different price snapshot": {
			other: Cart{SessionID: "s1", Lines: []Line{
				{ItemID: "widget", Quantity: 2, UnitPrice: 8.00},
				{ItemID: "gig", Quantity: 1, UnitPrice: 35},
			}},
			want: false,
		},
		"missing line": {
			other: Cart{SessionID: "s1", Lines: base.Lines[:1]},
			want:  false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := base.Equal(tt.other); got != tt.want {
				t.Fatalf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecomputeDerivesSubtotals(t *testing.T) {
	c := Cart{Lines: []Line{
		{ItemID: "widget", Quantity: 3, UnitPrice: 2.50},
		{ItemID: "gig", Quantity: 2, UnitPrice: 10},
	}}

	c.recompute()

	if c.Lines[0].Subtotal != 7.50 || c.Lines[1].Subtotal != 20 {
		t.Fatalf("unexpected subtotals: %+v", c.Lines)
	}
	if c.TotalQuantity != 5 || c.TotalPrice != 27.50 {
		t.Fatalf("unexpected totals: %d / %v", c.TotalQuantity, c.TotalPrice)
	}
}

func TestQuantityOfAbsentItemIsZero(t *testing.T) {
	c := Cart{Lines: []Line{{ItemID: "widget", Quantity: 2}}}
	if got := c.Quantity("gadget"); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}
