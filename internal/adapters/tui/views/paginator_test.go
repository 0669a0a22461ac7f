package views

import "testing"

func TestPaginator_ScrollsWithCursor(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(10)

	for range 4 {
		p.CursorDown()
	}
	if start, end := p.VisibleRange(); start != 2 || end != 5 {
		t.Errorf("visible = [%d,%d), want [2,5)", start, end)
	}

	p.SetCursor(0)
	if start, _ := p.VisibleRange(); start != 0 {
		t.Errorf("start = %d, want 0", start)
	}
}

func TestPaginator_Pages(t *testing.T) {
	p := NewPaginator(4)
	p.SetTotal(10)

	if !p.NextPage() || p.Cursor() != 4 {
		t.Errorf("cursor = %d, want 4", p.Cursor())
	}
	p.NextPage()
	p.NextPage()
	if p.Cursor() != 9 {
		t.Errorf("cursor = %d, want 9", p.Cursor())
	}
	if p.NextPage() {
		t.Error("NextPage at the end should report false")
	}
	if !p.PrevPage() || p.Cursor() != 5 {
		t.Errorf("cursor = %d, want 5", p.Cursor())
	}
}

func TestPaginator_ShrinkingTotalClampsCursor(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(10)
	p.SetCursor(8)

	p.SetTotal(4)
	if p.Cursor() != 3 {
		t.Errorf("cursor = %d, want 3", p.Cursor())
	}
	if start, end := p.VisibleRange(); start != 1 || end != 4 {
		t.Errorf("visible = [%d,%d), want [1,4)", start, end)
	}

	p.SetTotal(0)
	if p.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", p.Cursor())
	}
}

func TestPaginator_SetPageSize(t *testing.T) {
	p := NewPaginator(10)
	p.SetTotal(20)
	p.SetCursor(15)

	p.SetPageSize(4)
	if start, end := p.VisibleRange(); start != 12 || end != 16 {
		t.Errorf("visible = [%d,%d), want [12,16)", start, end)
	}

	p.SetPageSize(0)
	if start, end := p.VisibleRange(); end-start != 1 {
		t.Errorf("visible = [%d,%d), want one row", start, end)
	}
}
