package utils

import "testing"

func TestRowListHitTest(t *testing.T) {
	list := RowList{X: 10, Y: 100, Width: 200, RowHeight: 20, Count: 3}

	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"第一行顶部", 10, 100, 0},
		{"第二行", 50, 125, 1},
		{"最后一行底部", 209, 159, 2},
		{"列表下方", 50, 160, -1},
		{"列表上方", 50, 99, -1},
		{"左侧", 9, 110, -1},
		{"右侧", 210, 110, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := list.HitTest(tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRowListEmpty(t *testing.T) {
	if got := (RowList{Width: 100, RowHeight: 20}).HitTest(5, 5); got != -1 {
		t.Errorf("Empty list HitTest = %d, want -1", got)
	}
	if got := (RowList{Width: 100, Count: 3}).HitTest(5, 5); got != -1 {
		t.Errorf("Zero row height HitTest = %d, want -1", got)
	}
}

func TestRowListRowTop(t *testing.T) {
	list := RowList{Y: 40, RowHeight: 18, Count: 5}
	if got := list.RowTop(3); got != 94 {
		t.Errorf("RowTop(3) = %d, want 94", got)
	}
}
